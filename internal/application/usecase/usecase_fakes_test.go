package usecase_test

import (
	"github.com/vmaccaroni/facturas-api/internal/domain/entity"
)

// Fakes en memoria mínimos para los CRUD (sin transacciones).

type fakeClientRepo struct {
	byID map[string]*entity.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{byID: make(map[string]*entity.Client)}
}

func (r *fakeClientRepo) Create(c *entity.Client) error {
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) GetByDocNumber(doc string) (*entity.Client, error) {
	for _, c := range r.byID {
		if c.DocNumber == doc {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) List() ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.byID {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeClientRepo) Update(c *entity.Client) error {
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeClientRepo) ExistsByID(id string) (bool, error) {
	_, ok := r.byID[id]
	return ok, nil
}

type fakeProductRepo struct {
	byID map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) List() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) AdjustStock(id string, delta int) error {
	r.byID[id].Stock += delta
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeProductRepo) ExistsByID(id string) (bool, error) {
	_, ok := r.byID[id]
	return ok, nil
}
