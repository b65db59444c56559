package userservice

import (
	"context"

	"golang.org/x/sync/errgroup"

	"gorecipes/internal/domain"
	apperror "gorecipes/internal/errors"
	"gorecipes/internal/pkg/logger"
	"gorecipes/internal/pkg/validation"
)

// SessionStore é o contrato da sessão local (internal/session).
type SessionStore interface {
	Login(ctx context.Context, email, password string) (domain.SessionRecord, error)
	Register(ctx context.Context, req domain.RegisterRequest) (domain.SessionRecord, error)
	Logout()
	CurrentUser() (domain.User, bool)
	IsLoggedIn() bool
	Profile(ctx context.Context) (domain.User, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.User, error)
}

// RecipeLister lista as receitas do usuário logado.
type RecipeLister interface {
	UserRecipes(ctx context.Context) ([]domain.RecipeCard, error)
}

// ProfileView é o que a página de perfil exibe.
// Falhas parciais viram mensagens; a página sempre renderiza.
type ProfileView struct {
	User         domain.User
	Recipes      []domain.RecipeCard
	ProfileError string
}

// UserService valida formulários de conta e delega para a sessão.
type UserService struct {
	Session SessionStore
	Recipes RecipeLister
	Logger  logger.Logger
}

// NewService cria uma nova instância do UserService.
func NewService(sess SessionStore, recipes RecipeLister, log logger.Logger) *UserService {
	return &UserService{
		Session: sess,
		Recipes: recipes,
		Logger:  log,
	}
}

// Login valida o formulário e autentica.
func (s *UserService) Login(ctx context.Context, req domain.LoginRequest) (domain.SessionRecord, error) {
	// 1. Validação do formulário
	if err := validation.Struct(req); err != nil {
		return domain.SessionRecord{}, err
	}

	// 2. Delegação para a sessão (persistência incluída)
	return s.Session.Login(ctx, req.Email, req.Password)
}

// Register valida o formulário e cria a conta.
func (s *UserService) Register(ctx context.Context, req domain.RegisterRequest) (domain.SessionRecord, error) {
	if err := validation.Struct(req); err != nil {
		return domain.SessionRecord{}, err
	}
	return s.Session.Register(ctx, req)
}

// Logout encerra a sessão local.
func (s *UserService) Logout() {
	s.Session.Logout()
}

// Current devolve o usuário persistido e se há sessão.
func (s *UserService) Current() (domain.User, bool) {
	if !s.Session.IsLoggedIn() {
		return domain.User{}, false
	}
	user, _ := s.Session.CurrentUser()
	return user, true
}

// UpdateProfile valida e envia a atualização do perfil.
func (s *UserService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.User, error) {
	if !s.Session.IsLoggedIn() {
		return domain.User{}, apperror.NewUnauthorizedError("You must be logged in to update your profile")
	}
	if err := validation.Struct(update); err != nil {
		return domain.User{}, err
	}
	return s.Session.UpdateProfile(ctx, update)
}

// ProfilePage carrega perfil e receitas do usuário em paralelo.
func (s *UserService) ProfilePage(ctx context.Context) (ProfileView, error) {
	if !s.Session.IsLoggedIn() {
		return ProfileView{}, apperror.NewUnauthorizedError("You must be logged in to view your profile")
	}

	var view ProfileView
	g, gctx := errgroup.WithContext(ctx)

	// As duas cargas são independentes: nenhuma devolve erro ao grupo.
	g.Go(func() error {
		user, err := s.Session.Profile(gctx)
		if err != nil {
			s.Logger.Error("Falha ao carregar perfil.", err)
			view.ProfileError = "Failed to load your profile information"
			view.User, _ = s.Session.CurrentUser()
			return nil
		}
		view.User = user
		return nil
	})

	var recipes []domain.RecipeCard
	g.Go(func() error {
		list, err := s.Recipes.UserRecipes(gctx)
		if err != nil {
			s.Logger.Error("Falha ao carregar receitas do usuário.", err)
			return nil
		}
		recipes = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return ProfileView{}, err
	}
	if recipes == nil {
		recipes = []domain.RecipeCard{}
	}
	view.Recipes = recipes
	return view, nil
}
