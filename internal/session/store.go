package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"gorecipes/internal/domain"
	apperror "gorecipes/internal/errors"
	"gorecipes/internal/pkg/localstore"
	"gorecipes/internal/pkg/logger"
	"gorecipes/internal/pkg/token"
)

// Chaves persistidas no armazenamento local.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Backend é o subconjunto do cliente HTTP usado pela sessão.
type Backend interface {
	Request(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error)
}

// Storage é o armazenamento chave/valor durável da sessão.
type Storage interface {
	Get(key string) (string, bool)
	Set(values map[string]string) error
	Remove(keys ...string) error
	Watch(ctx context.Context, onChange func([]localstore.Change)) error
}

// Origin diz se a mudança veio deste processo ou de outro que compartilha o arquivo.
type Origin string

const (
	OriginLocal    Origin = "local"
	OriginExternal Origin = "external"
)

// Event notifica uma mudança em uma chave da sessão.
type Event struct {
	Key     string
	Origin  Origin
	Removed bool
}

const subscriberBuffer = 16

// Store guarda o token e o usuário da sessão atual.
// É um objeto injetado (não um singleton); todas as telas do processo compartilham a mesma instância.
type Store struct {
	api     Backend
	storage Storage
	log     logger.Logger

	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
}

// NewStore cria a sessão sobre o cliente da API e o armazenamento local.
func NewStore(api Backend, storage Storage, log logger.Logger) *Store {
	return &Store{
		api:     api,
		storage: storage,
		log:     log,
		subs:    make(map[int]chan Event),
	}
}

// --- Autenticação ---

// Login autentica e persiste token + payload completo quando a resposta traz token.
func (s *Store) Login(ctx context.Context, email, password string) (domain.SessionRecord, error) {
	return s.authenticate(ctx, "/users/login", domain.LoginRequest{Email: email, Password: password})
}

// Register cria a conta com o mesmo contrato de persistência do Login.
func (s *Store) Register(ctx context.Context, req domain.RegisterRequest) (domain.SessionRecord, error) {
	return s.authenticate(ctx, "/users/register", req)
}

func (s *Store) authenticate(ctx context.Context, path string, body interface{}) (domain.SessionRecord, error) {
	// 1. Chamada à API (sem retry)
	raw, err := s.api.Request(ctx, http.MethodPost, path, body)
	if err != nil {
		switch apperror.StatusOf(err) {
		case http.StatusBadRequest, http.StatusUnauthorized:
			var httpErr *apperror.HTTPError
			errors.As(err, &httpErr)
			return domain.SessionRecord{}, apperror.NewAuthError(httpErr)
		}
		return domain.SessionRecord{}, err
	}

	// 2. Decodificação
	var resp domain.AuthResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return domain.SessionRecord{}, apperror.NewNetworkError("invalid auth response", err)
	}
	record := domain.SessionRecord{Token: resp.Token, User: resp.User, Raw: raw}

	// 3. Persistência: só quando há token; token e usuário juntos
	if resp.Token == "" {
		s.log.Warn("Resposta de autenticação sem token; nada persistido.", map[string]interface{}{"path": path})
		return record, nil
	}
	if err := s.storage.Set(map[string]string{KeyToken: resp.Token, KeyUser: string(raw)}); err != nil {
		return record, apperror.NewStorageError("falha ao persistir sessão", err)
	}
	s.publish(Event{Key: KeyToken, Origin: OriginLocal}, Event{Key: KeyUser, Origin: OriginLocal})
	s.log.Info("Sessão iniciada.", map[string]interface{}{"email": resp.Email})
	return record, nil
}

// Logout remove token e usuário. Nunca falha: erros de persistência só são registrados.
func (s *Store) Logout() {
	if err := s.storage.Remove(KeyToken, KeyUser); err != nil {
		s.log.Error("Falha ao limpar sessão persistida.", err)
		return
	}
	s.publish(
		Event{Key: KeyToken, Origin: OriginLocal, Removed: true},
		Event{Key: KeyUser, Origin: OriginLocal, Removed: true},
	)
	s.log.Info("Sessão encerrada.", nil)
}

// --- Leitura ---

// Token devolve o bearer token persistido (vazio sem sessão).
func (s *Store) Token() string {
	t, _ := s.storage.Get(KeyToken)
	return t
}

// IsLoggedIn é apenas "existe token"; não verifica validade nem expiração.
func (s *Store) IsLoggedIn() bool {
	return s.Token() != ""
}

// CurrentUser lê o usuário persistido. Registro ausente ou ilegível => false.
func (s *Store) CurrentUser() (domain.User, bool) {
	raw, ok := s.storage.Get(KeyUser)
	if !ok || raw == "" {
		return domain.User{}, false
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warn("Usuário persistido ilegível.", map[string]interface{}{"error": err.Error()})
		return domain.User{}, false
	}
	return user, true
}

// Session devolve o registro completo (token, usuário e payload bruto).
func (s *Store) Session() (domain.SessionRecord, bool) {
	user, ok := s.CurrentUser()
	raw, _ := s.storage.Get(KeyUser)
	record := domain.SessionRecord{Token: s.Token(), User: user, Raw: json.RawMessage(raw)}
	return record, ok || record.Token != ""
}

// Claims lê o JWT sem verificar assinatura (exibição e logs apenas).
func (s *Store) Claims() (token.Claims, bool) {
	t := s.Token()
	if t == "" {
		return token.Claims{}, false
	}
	c, err := token.Inspect(t)
	if err != nil {
		return token.Claims{}, false
	}
	return c, true
}

// --- Perfil ---

// Profile busca o perfil atual na API. Não altera o estado persistido.
func (s *Store) Profile(ctx context.Context) (domain.User, error) {
	raw, err := s.api.Request(ctx, http.MethodGet, "/users/profile", nil)
	if err != nil {
		return domain.User{}, err
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return domain.User{}, apperror.NewNetworkError("invalid profile response", err)
	}
	return user, nil
}

// UpdateProfile envia a atualização parcial e substitui o usuário persistido
// pela resposta completa (sem mesclar). O token não é tocado.
func (s *Store) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.User, error) {
	raw, err := s.api.Request(ctx, http.MethodPut, "/users/profile", update)
	if err != nil {
		return domain.User{}, err
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return domain.User{}, apperror.NewNetworkError("invalid profile response", err)
	}
	if err := s.storage.Set(map[string]string{KeyUser: string(raw)}); err != nil {
		return user, apperror.NewStorageError("falha ao persistir perfil", err)
	}
	s.publish(Event{Key: KeyUser, Origin: OriginLocal})
	return user, nil
}

// --- Notificação ---

// Subscribe registra um ouvinte. O cancelamento fecha o canal.
// Eventos são descartados se o ouvinte não consumir (buffer cheio).
func (s *Store) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Event, subscriberBuffer)
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Watch encaminha mudanças feitas por outros processos até ctx terminar.
func (s *Store) Watch(ctx context.Context) error {
	return s.storage.Watch(ctx, func(changes []localstore.Change) {
		events := make([]Event, 0, len(changes))
		for _, c := range changes {
			if c.Key != KeyToken && c.Key != KeyUser {
				continue
			}
			events = append(events, Event{Key: c.Key, Origin: OriginExternal, Removed: c.Removed})
		}
		if len(events) > 0 {
			s.log.Debug("Sessão alterada por outro processo.", map[string]interface{}{"events": len(events)})
			s.publish(events...)
		}
	})
}

func (s *Store) publish(events ...Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs {
		for _, ev := range events {
			select {
			case ch <- ev:
			default:
				s.log.Warn("Ouvinte da sessão lento; evento descartado.", map[string]interface{}{"key": ev.Key})
			}
		}
	}
}
