package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"

	"gorecipes/internal/pkg/logger"
)

// Change descreve uma chave que mudou entre duas leituras do arquivo.
// Removed indica que a chave deixou de existir.
type Change struct {
	Key     string
	Value   string
	Removed bool
}

// FileStore é um armazenamento chave/valor de strings persistido em um arquivo JSON.
// Toda escrita substitui o arquivo inteiro (tmp + rename), então leitores de
// outros processos nunca veem um arquivo pela metade.
type FileStore struct {
	mu   sync.Mutex
	path string
	data map[string]string
	log  logger.Logger
}

// Open carrega (ou cria em memória) o armazenamento em path.
// Um arquivo inexistente não é erro; um arquivo corrompido é tratado como vazio.
func Open(path string, log logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("falha ao criar diretório do armazenamento: %w", err)
	}

	s := &FileStore{path: path, data: map[string]string{}, log: log}
	data, err := s.readFile()
	if err != nil {
		return nil, err
	}
	s.data = data
	return s, nil
}

// Path retorna o caminho do arquivo.
func (s *FileStore) Path() string { return s.path }

// Get retorna o valor de key.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

// Set grava todas as chaves de values em uma única escrita.
// A escrita parte do conteúdo atual do arquivo, então chaves gravadas por
// outros processos são preservadas.
func (s *FileStore) Set(values map[string]string) error {
	return s.update(func(m map[string]string) {
		for k, v := range values {
			m[k] = v
		}
	})
}

// Remove apaga as chaves em uma única escrita. Chaves ausentes são ignoradas.
func (s *FileStore) Remove(keys ...string) error {
	return s.update(func(m map[string]string) {
		for _, k := range keys {
			delete(m, k)
		}
	})
}

// update aplica apply ao arquivo em disco e à cópia em memória.
// As demais chaves em memória só mudam via Reload, para que o Watch
// ainda reporte as alterações externas.
func (s *FileStore) update(apply func(map[string]string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	onDisk, err := s.readFile()
	if err != nil {
		return err
	}
	apply(onDisk)
	if err := s.writeFile(onDisk); err != nil {
		return err
	}

	next := cloneMap(s.data)
	apply(next)
	s.data = next
	return nil
}

// Reload relê o arquivo e devolve as chaves que mudaram desde a última leitura/escrita.
func (s *FileStore) Reload() ([]Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh, err := s.readFile()
	if err != nil {
		return nil, err
	}
	changes := diff(s.data, fresh)
	s.data = fresh
	return changes, nil
}

// Watch observa o diretório do arquivo e chama onChange a cada alteração externa.
// Bloqueia até ctx terminar. Escritas do próprio processo não geram chamadas,
// pois o estado em memória já está atualizado quando o evento chega.
func (s *FileStore) Watch(ctx context.Context, onChange func([]Change)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("falha ao criar watcher: %w", err)
	}
	defer watcher.Close()

	// O rename troca o inode, então observamos o diretório e filtramos pelo nome.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("falha ao observar %s: %w", filepath.Dir(s.path), err)
	}
	target := filepath.Clean(s.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			changes, err := s.Reload()
			if err != nil {
				s.log.Warn("Falha ao recarregar armazenamento local.", map[string]interface{}{"path": s.path, "error": err.Error()})
				continue
			}
			if len(changes) > 0 {
				onChange(changes)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Error("Erro no watcher do armazenamento local.", err)
		}
	}
}

// --- Helpers de arquivo ---

func (s *FileStore) readFile() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao ler %s: %w", s.path, err)
	}
	if len(raw) == 0 {
		return map[string]string{}, nil
	}

	data := map[string]string{}
	if err := json.Unmarshal(raw, &data); err != nil {
		s.log.Warn("Armazenamento local corrompido; tratando como vazio.", map[string]interface{}{"path": s.path})
		return map[string]string{}, nil
	}
	return data, nil
}

// writeFile grava em um temporário no mesmo diretório e renomeia por cima.
func (s *FileStore) writeFile(data map[string]string) error {
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("falha ao criar arquivo temporário: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("falha ao gravar arquivo temporário: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("falha ao substituir %s: %w", s.path, err)
	}
	return nil
}

func cloneMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// diff lista as chaves alteradas em ordem alfabética.
func diff(old, fresh map[string]string) []Change {
	var changes []Change
	for k, v := range fresh {
		if prev, ok := old[k]; !ok || prev != v {
			changes = append(changes, Change{Key: k, Value: v})
		}
	}
	for k := range old {
		if _, ok := fresh[k]; !ok {
			changes = append(changes, Change{Key: k, Removed: true})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Key < changes[j].Key })
	return changes
}
