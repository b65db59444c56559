package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"gorecipes/config"
	"gorecipes/internal/catalog"
	"gorecipes/internal/pkg/apiclient"
	"gorecipes/internal/pkg/cache"
	"gorecipes/internal/pkg/localstore"
	"gorecipes/internal/pkg/logger"
	"gorecipes/internal/session"

	// Camadas para Injeção de Dependências
	"gorecipes/internal/api/page"   // Páginas HTML
	"gorecipes/internal/api/recipe" // Handlers JSON
	"gorecipes/internal/api/router" // Roteador central
	"gorecipes/internal/api/user"
	"gorecipes/internal/repository/reciperepo" // Acesso à API externa
	"gorecipes/internal/service/recipeservice" // Lógica de Negócio
	"gorecipes/internal/service/userservice"
)

// @title GoRecipes API
// @version 1.0
// @description Front end de receitas: resolução de receitas em três fontes e sessão local.
// @host localhost:8080
// @BasePath /
func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando GoRecipes...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Configurações carregadas.", map[string]interface{}{"api": cfg.APIBaseURL, "env": cfg.Environment})

	// 2. Recursos de Infraestrutura

	// A. Armazenamento local da sessão
	local, err := localstore.Open(cfg.SessionFile, log)
	if err != nil {
		log.Fatal("Falha ao abrir o armazenamento da sessão.", err)
	}
	log.Info("Sessão local aberta.", map[string]interface{}{"path": local.Path()})

	// B. Cache (Redis), opcional
	var cacheClient cache.Client
	if cfg.RedisAddr != "" {
		c, err := cache.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			log.Warn("Redis indisponível. Cache e rate limit desligados.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
			c.Close()
		} else {
			cacheClient = c
			defer c.Close()
			log.Info("Conexão Redis estabelecida.", nil)
		}
	}

	// C. Catálogo embutido (curadas + mock)
	cat, err := catalog.Load()
	if err != nil {
		log.Fatal("Falha ao carregar o catálogo embutido.", err)
	}

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Client -> Sessão -> Repository -> Service -> Handler

	// O token é lido do armazenamento a cada requisição; a sessão escreve no mesmo arquivo.
	api := apiclient.NewClient(cfg.APIBaseURL, apiclient.FromStore(local, session.KeyToken), log)
	sess := session.NewStore(api, local, log)
	log.Debug("Sessão inicializada.", nil)

	recipeRepo := reciperepo.NewRecipeRepository(api, cacheClient, cfg.CacheTTL, log)
	log.Debug("Repositório de Receitas inicializado.", nil)

	recipeSvc := recipeservice.NewService(recipeRepo, cat, sess, log, cfg.PageSize, cfg.NewestLimit)
	userSvc := userservice.NewService(sess, recipeSvc, log)
	log.Debug("Serviços inicializados.", nil)

	pageHandler := page.NewHandler(recipeSvc, userSvc, log)
	recipeHandler := recipe.NewHandler(recipeSvc, log)
	userHandler := user.NewHandler(userSvc, log)
	log.Debug("Handlers inicializados.", nil)

	// 4. Sincronização da sessão entre processos (login/logout em outro terminal)
	ctx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go func() {
		if err := sess.Watch(ctx); err != nil {
			log.Error("Observador da sessão encerrado com erro.", err)
		}
	}()
	events, unsubscribe := sess.Subscribe()
	defer unsubscribe()
	go func() {
		for ev := range events {
			if ev.Origin == session.OriginExternal {
				log.Info("Sessão alterada por outro processo.", map[string]interface{}{"key": ev.Key, "removed": ev.Removed})
			}
		}
	}()

	// 5. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(pageHandler, recipeHandler, userHandler, sess, router.RateLimit{
		Cache:       cacheClient,
		MaxRequests: cfg.RateLimitMaxRequests,
		Period:      cfg.RateLimitPeriod,
	}, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 6. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor GoRecipes ouvindo na porta", map[string]interface{}{"port": cfg.Port, "api": api.BaseURL()})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)
	stopWatch()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
