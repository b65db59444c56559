package main

import (
	"gorecipes/config"
	"gorecipes/internal/catalog"
	"gorecipes/internal/pkg/apiclient"
	"gorecipes/internal/pkg/localstore"
	"gorecipes/internal/pkg/logger"
	"gorecipes/internal/repository/reciperepo"
	"gorecipes/internal/service/recipeservice"
	"gorecipes/internal/service/userservice"
	"gorecipes/internal/session"
)

// app reúne as dependências montadas para um comando.
type app struct {
	log     logger.Logger
	session *session.Store
	recipes *recipeservice.Service
	users   *userservice.UserService
}

// newApp monta a mesma cadeia do servidor, sem cache: Client -> Sessão -> Repository -> Service.
func newApp(cfg *config.Config) (*app, error) {
	log := logger.NewLogger(cfg.LogLevel)

	local, err := localstore.Open(cfg.SessionFile, log)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load()
	if err != nil {
		return nil, err
	}

	api := apiclient.NewClient(cfg.APIBaseURL, apiclient.FromStore(local, session.KeyToken), log)
	sess := session.NewStore(api, local, log)
	repo := reciperepo.NewRecipeRepository(api, nil, 0, log)
	recipes := recipeservice.NewService(repo, cat, sess, log, cfg.PageSize, cfg.NewestLimit)

	return &app{
		log:     log,
		session: sess,
		recipes: recipes,
		users:   userservice.NewService(sess, recipes, log),
	}, nil
}
