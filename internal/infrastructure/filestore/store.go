// Package filestore implementa RegistrationRepository sobre un único archivo JSON.
//
// Los escritores se serializan con un mutex y, dentro de la sección crítica, se vuelve a
// comprobar la unicidad antes de escribir. Cada escritura reemplaza el archivo completo de
// forma atómica (archivo temporal en el mismo directorio + fsync + rename), de modo que
// tras una caída el archivo contiene el estado anterior o el nuevo, nunca uno parcial.
// Los lectores usan la última instantánea confirmada sin tomar el mutex.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/jhoicas/registro-empresas/internal/domain"
	"github.com/jhoicas/registro-empresas/internal/domain/entity"
	"github.com/jhoicas/registro-empresas/internal/domain/repository"
)

var _ repository.RegistrationRepository = (*Store)(nil)

// snapshot estado confirmado e inmutable una vez publicado.
type snapshot struct {
	list  []*entity.RegisteredEntity
	byKey map[string]*entity.RegisteredEntity
}

func newSnapshot(list []*entity.RegisteredEntity) *snapshot {
	s := &snapshot{list: list, byKey: make(map[string]*entity.RegisteredEntity, len(list))}
	for _, e := range list {
		s.byKey[e.NormalizedIdentifier] = e
	}
	return s
}

// Store repositorio de registros respaldado por archivo.
type Store struct {
	path string
	mu   sync.Mutex
	snap atomic.Pointer[snapshot]

	// beforeRename permite simular una caída entre la escritura temporal y el reemplazo.
	beforeRename func(tmpPath string) error
}

// Open carga (o crea vacío) el archivo indicado.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("filestore: ruta vacía")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("filestore: crear directorio: %w", errors.Join(domain.ErrStorageUnavailable, err))
	}
	list, err := load(path)
	if err != nil {
		return nil, err
	}
	s := &Store{path: path}
	s.snap.Store(newSnapshot(list))
	return s, nil
}

func load(path string) ([]*entity.RegisteredEntity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("filestore: leer %s: %w", path, errors.Join(domain.ErrStorageUnavailable, err))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var list []*entity.RegisteredEntity
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("filestore: decodificar %s: %w", path, err)
	}
	return list, nil
}

// Path ruta del archivo de datos.
func (s *Store) Path() string { return s.path }

// FindByNormalizedIdentifier busca en la última instantánea confirmada.
func (s *Store) FindByNormalizedIdentifier(_ context.Context, key string) (*entity.RegisteredEntity, error) {
	e, ok := s.snap.Load().byKey[key]
	if !ok {
		return nil, nil
	}
	return e.Clone(), nil
}

// InsertIfAbsent inserta e si su clave normalizada no existe. La comprobación y la
// escritura ocurren dentro de la misma sección crítica.
func (s *Store) InsertIfAbsent(ctx context.Context, e *entity.RegisteredEntity) (*entity.RegisteredEntity, error) {
	if e == nil || e.NormalizedIdentifier == "" {
		return nil, fmt.Errorf("filestore: %w: clave normalizada vacía", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.snap.Load()
	if existing, ok := cur.byKey[e.NormalizedIdentifier]; ok {
		return existing.Clone(), &domain.AlreadyRegisteredError{Existing: existing.Clone()}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stored := e.Clone()
	list := make([]*entity.RegisteredEntity, len(cur.list), len(cur.list)+1)
	copy(list, cur.list)
	list = append(list, stored)

	if err := s.write(list); err != nil {
		return nil, err
	}
	s.snap.Store(newSnapshot(list))
	return stored.Clone(), nil
}

// Seed fusiona list por clave normalizada; el último registro de cada clave gana y
// conserva la posición del existente.
func (s *Store) Seed(_ context.Context, list []*entity.RegisteredEntity) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.snap.Load()
	merged := make([]*entity.RegisteredEntity, len(cur.list), len(cur.list)+len(list))
	copy(merged, cur.list)
	pos := make(map[string]int, len(merged))
	for i, e := range merged {
		pos[e.NormalizedIdentifier] = i
	}
	for _, e := range list {
		if e == nil || e.NormalizedIdentifier == "" {
			return 0, fmt.Errorf("filestore: %w: registro sin clave normalizada", domain.ErrInvalidInput)
		}
		if i, ok := pos[e.NormalizedIdentifier]; ok {
			merged[i] = e.Clone()
			continue
		}
		pos[e.NormalizedIdentifier] = len(merged)
		merged = append(merged, e.Clone())
	}

	if err := s.write(merged); err != nil {
		return 0, err
	}
	s.snap.Store(newSnapshot(merged))
	return len(list), nil
}

// List devuelve una página en orden de registro.
func (s *Store) List(_ context.Context, limit, offset int) ([]*entity.RegisteredEntity, error) {
	list := s.snap.Load().list
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []*entity.RegisteredEntity{}, nil
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]*entity.RegisteredEntity, 0, end-offset)
	for _, e := range list[offset:end] {
		out = append(out, e.Clone())
	}
	return out, nil
}

// Count número de registros confirmados.
func (s *Store) Count(_ context.Context) (int, error) {
	return len(s.snap.Load().list), nil
}

// Close no libera recursos: cada escritura ya es durable.
func (s *Store) Close() error { return nil }

// write reemplaza atómicamente el archivo con la colección completa.
// Ante cualquier error el archivo anterior queda intacto.
func (s *Store) write(list []*entity.RegisteredEntity) error {
	if list == nil {
		list = []*entity.RegisteredEntity{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("filestore: codificar: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".tmp.*")
	if err != nil {
		return unavailable("crear archivo temporal", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return unavailable("escribir archivo temporal", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return unavailable("sincronizar archivo temporal", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return unavailable("cerrar archivo temporal", err)
	}
	if s.beforeRename != nil {
		if err := s.beforeRename(tmpPath); err != nil {
			return unavailable("reemplazar archivo", err)
		}
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		cleanup()
		return unavailable("reemplazar archivo", err)
	}
	syncDir(dir)
	return nil
}

// syncDir persiste la entrada de directorio del rename. Algunos sistemas de archivos
// no admiten fsync sobre directorios; en ese caso se ignora.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}

func unavailable(op string, err error) error {
	return fmt.Errorf("filestore: %s: %w", op, errors.Join(domain.ErrStorageUnavailable, err))
}
