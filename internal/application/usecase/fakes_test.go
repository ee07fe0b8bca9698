package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/eva-blog/blog-api/internal/application/ports"
	"github.com/eva-blog/blog-api/internal/domain"
	"github.com/eva-blog/blog-api/internal/domain/entity"
)

var (
	errDB    = errors.New("conexión rechazada")
	errDisco = errors.New("disco lleno")
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacenamiento que falla
// ──────────────────────────────────────────────────────────────────────────────

// failingStore delega en store y falla la escritura número failOn (base 1).
type failingStore struct {
	ports.PhotoStore
	failOn int
	saves  int
}

func (s *failingStore) Save(ctx context.Context, name string, content io.Reader) error {
	s.saves++
	if s.saves == s.failOn {
		return errDisco
	}
	return s.PhotoStore.Save(ctx, name, content)
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memComercios struct {
	mu     sync.Mutex
	rows   map[int64]entity.Comercio
	nextID int64
	fail   error
}

func newMemComercios(cs ...entity.Comercio) *memComercios {
	m := &memComercios{rows: map[int64]entity.Comercio{}}
	for _, c := range cs {
		m.rows[c.ID] = c
		if c.ID > m.nextID {
			m.nextID = c.ID
		}
	}
	return m
}

func (m *memComercios) sorted() []*entity.Comercio {
	out := make([]*entity.Comercio, 0, len(m.rows))
	for _, c := range m.rows {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memComercios) filter(keep func(*entity.Comercio) bool) ([]*entity.Comercio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	out := []*entity.Comercio{}
	for _, c := range m.sorted() {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memComercios) FindAll(context.Context) ([]*entity.Comercio, error) {
	return m.filter(func(*entity.Comercio) bool { return true })
}

func (m *memComercios) FindPage(_ context.Context, page, size int) ([]*entity.Comercio, int64, error) {
	all, err := m.filter(func(*entity.Comercio) bool { return true })
	if err != nil {
		return nil, 0, err
	}
	from := page * size
	if from > len(all) {
		from = len(all)
	}
	to := from + size
	if to > len(all) {
		to = len(all)
	}
	return all[from:to], int64(len(all)), nil
}

func (m *memComercios) FindByActividad(_ context.Context, a string) ([]*entity.Comercio, error) {
	return m.filter(func(c *entity.Comercio) bool { return c.Actividad == a })
}

func (m *memComercios) FindByMes(_ context.Context, mes int) ([]*entity.Comercio, error) {
	return m.filter(func(c *entity.Comercio) bool { return c.Mes == mes })
}

func (m *memComercios) FindOneByMes(ctx context.Context, mes int) ([]*entity.Comercio, error) {
	list, err := m.FindByMes(ctx, mes)
	if len(list) > 1 {
		list = list[:1]
	}
	return list, err
}

func (m *memComercios) FindLatest(context.Context) ([]*entity.Comercio, error) {
	all, err := m.filter(func(*entity.Comercio) bool { return true })
	if err != nil || len(all) == 0 {
		return all, err
	}
	latest := all[0]
	for _, c := range all[1:] {
		if !c.Fecha.Before(latest.Fecha) {
			latest = c
		}
	}
	return []*entity.Comercio{latest}, nil
}

func (m *memComercios) Meses(context.Context) ([]int, error) {
	all, err := m.filter(func(*entity.Comercio) bool { return true })
	seen := map[int]bool{}
	out := []int{}
	for _, c := range all {
		if !seen[c.Mes] {
			seen[c.Mes] = true
			out = append(out, c.Mes)
		}
	}
	sort.Ints(out)
	return out, err
}

func (m *memComercios) top(limit int, less func(a, b *entity.Comercio) bool) ([]*entity.Comercio, error) {
	all, err := m.filter(func(*entity.Comercio) bool { return true })
	sort.SliceStable(all, func(i, j int) bool { return less(all[i], all[j]) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, err
}

func (m *memComercios) TopByLikes(_ context.Context, limit int) ([]*entity.Comercio, error) {
	return m.top(limit, func(a, b *entity.Comercio) bool { return a.Likes > b.Likes })
}

func (m *memComercios) TopByVisitas(_ context.Context, limit int) ([]*entity.Comercio, error) {
	return m.top(limit, func(a, b *entity.Comercio) bool { return a.Visitas > b.Visitas })
}

func (m *memComercios) Actividades(context.Context) ([]string, error) {
	all, err := m.filter(func(*entity.Comercio) bool { return true })
	seen := map[string]bool{}
	out := []string{}
	for _, c := range all {
		if !seen[c.Actividad] {
			seen[c.Actividad] = true
			out = append(out, c.Actividad)
		}
	}
	sort.Strings(out)
	return out, err
}

func (m *memComercios) FindByID(_ context.Context, id int64) (*entity.Comercio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	c, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memComercios) Save(_ context.Context, c *entity.Comercio) (*entity.Comercio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	saved := *c
	saved.Comentarios = nil
	if _, ok := m.rows[saved.ID]; !ok || saved.ID == 0 {
		m.nextID++
		saved.ID = m.nextID
	}
	m.rows[saved.ID] = saved
	return &saved, nil
}

func (m *memComercios) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if _, ok := m.rows[id]; !ok {
		return fmt.Errorf("delete comercio %d: %w", id, domain.ErrNotFound)
	}
	delete(m.rows, id)
	return nil
}

type memComentarios struct {
	byComercio map[int64][]entity.Comentario
}

func (m *memComentarios) FindByComercio(_ context.Context, id int64) ([]entity.Comentario, error) {
	if list, ok := m.byComercio[id]; ok {
		return list, nil
	}
	return []entity.Comentario{}, nil
}

type memUsuarios struct {
	mu     sync.Mutex
	rows   map[int64]entity.Usuario
	nextID int64
	saved  []entity.Usuario
	fail   error
}

func newMemUsuarios(us ...entity.Usuario) *memUsuarios {
	m := &memUsuarios{rows: map[int64]entity.Usuario{}}
	for _, u := range us {
		m.rows[u.ID] = u
		if u.ID > m.nextID {
			m.nextID = u.ID
		}
	}
	return m
}

func (m *memUsuarios) FindByID(_ context.Context, id int64) (*entity.Usuario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	u, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUsuarios) FindByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// Save reproduce el repositorio real: password y rol vacíos conservan lo almacenado.
func (m *memUsuarios) Save(_ context.Context, u *entity.Usuario) (*entity.Usuario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	saved := *u
	m.saved = append(m.saved, saved)
	prev, ok := m.rows[saved.ID]
	if !ok || saved.ID == 0 {
		m.nextID++
		saved.ID = m.nextID
		if saved.Rol == "" {
			saved.Rol = entity.RolUsuario
		}
	} else {
		if saved.Password == "" {
			saved.Password = prev.Password
		}
		if saved.Rol == "" {
			saved.Rol = prev.Rol
		}
	}
	m.rows[saved.ID] = saved
	return &saved, nil
}
