package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	apperror "gorecipes/internal/errors"
	"gorecipes/internal/pkg/logger"
)

// DefaultBaseURL é o endereço da API de receitas em desenvolvimento.
const DefaultBaseURL = "http://localhost:5000/api"

// TokenSource fornece o bearer token atual (vazio quando não há sessão).
type TokenSource interface {
	Token() string
}

// TokenFunc adapta uma função a TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// KeyReader é qualquer armazenamento chave/valor que guarde o token.
type KeyReader interface {
	Get(key string) (string, bool)
}

// FromStore lê o token diretamente do armazenamento local a cada requisição.
func FromStore(s KeyReader, key string) TokenSource {
	return TokenFunc(func() string {
		v, _ := s.Get(key)
		return v
	})
}

// Client é um cliente JSON fino para a API de receitas.
// Não faz retry e não define timeout: o transporte padrão decide.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	log        logger.Logger
}

// Option configura o Client.
type Option func(*Client)

// WithHTTPClient troca o *http.Client (usado nos testes).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient cria um cliente para baseURL. tokens pode ser nil.
func NewClient(baseURL string, tokens TokenSource, log logger.Logger, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL retorna o endereço configurado.
func (c *Client) BaseURL() string { return c.baseURL }

// Request envia a requisição e devolve o corpo JSON da resposta.
//
//   - 204 ou resposta não-JSON: devolve `{}`.
//   - status não-2xx: devolve *errors.HTTPError com corpo normalizado.
//   - falha de transporte ou JSON ilegível: devolve *errors.NetworkError.
func (c *Client) Request(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error) {
	url := c.baseURL + path

	// 1. Montagem da requisição
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperror.NewInternalError("falha ao serializar corpo da requisição", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, apperror.NewInternalError("falha ao criar requisição", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.log.Debug("Requisição para a API.", map[string]interface{}{"method": method, "path": path})

	// 2. Envio
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error(fmt.Sprintf("Falha de rede em %s %s.", method, path), err)
		return nil, apperror.NewNetworkError(fmt.Sprintf("request to %s failed", path), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("Falha ao ler corpo da resposta.", err)
		return nil, apperror.NewNetworkError("failed to read response body", err)
	}
	isJSON := isJSONContent(resp.Header.Get("Content-Type"))

	// 3. Respostas de erro
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := normalizeError(resp.StatusCode, raw, isJSON)
		c.log.Error(fmt.Sprintf("API respondeu %d em %s %s.", resp.StatusCode, method, path), httpErr)
		return nil, httpErr
	}

	// 4. Sucesso
	if resp.StatusCode == http.StatusNoContent || !isJSON {
		return json.RawMessage(`{}`), nil
	}
	if !json.Valid(raw) {
		err := fmt.Errorf("invalid JSON in %d response", resp.StatusCode)
		c.log.Error("Resposta JSON inválida.", err)
		return nil, apperror.NewNetworkError("failed to decode response body", err)
	}
	return json.RawMessage(raw), nil
}

// Do executa Request e decodifica o resultado em out (quando não for nil).
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	raw, err := c.Request(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperror.NewNetworkError("failed to decode response body", err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// --- Normalização de erros ---

func isJSONContent(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, "application/json")
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// normalizeError garante que o corpo do erro seja sempre um objeto com "message".
func normalizeError(status int, raw []byte, isJSON bool) *apperror.HTTPError {
	fallback := fmt.Sprintf("HTTP error %d", status)

	var body json.RawMessage
	switch {
	case isJSON && json.Valid(raw):
		body = json.RawMessage(raw)
	case isJSON:
		body = mustMessage("Could not parse error response")
	default:
		text := string(raw)
		if text == "" {
			text = fallback
		}
		body = mustMessage(text)
	}

	msg := fallback
	var probe struct {
		Message interface{} `json:"message"`
	}
	if json.Unmarshal(body, &probe) == nil {
		if s, ok := probe.Message.(string); ok && s != "" {
			msg = s
		}
	}
	return apperror.NewHTTPError(status, body, msg)
}

func mustMessage(msg string) json.RawMessage {
	b, _ := json.Marshal(map[string]string{"message": msg})
	return b
}
