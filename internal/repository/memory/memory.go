// Package memory provides an in-memory implementation of the ledger
// repositories. It backs tests and the "memory" storage type; semantics match
// the postgres store, including atomic create-plus-settlement.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"schoolfees-backend/internal/domain"
	"schoolfees-backend/internal/repository"
	"schoolfees-backend/internal/utils"
)

type Store struct {
	repository.FeeTypeRepository
	repository.FeeLabelRepository
	repository.DiscountRepository
	repository.CollectionRepository
	repository.StudentRepository
}

func NewStore() *Store {
	return &Store{
		FeeTypeRepository:    NewFeeTypeRepository(),
		FeeLabelRepository:   NewFeeLabelRepository(),
		DiscountRepository:   NewDiscountRepository(),
		CollectionRepository: NewCollectionRepository(),
		StudentRepository:    NewStudentRepository(),
	}
}

func today() string {
	return time.Now().Format("2006-01-02")
}

// --- fee types ---

type feeTypeRepository struct {
	mu     sync.RWMutex
	nextID int32
	items  map[int32]domain.FeeType
}

func NewFeeTypeRepository() repository.FeeTypeRepository {
	return &feeTypeRepository{items: make(map[int32]domain.FeeType)}
}

func (r *feeTypeRepository) Create(_ context.Context, ft *domain.FeeType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	ft.ID = r.nextID
	ft.CreatedOn = today()
	r.items[ft.ID] = *ft
	return nil
}

func (r *feeTypeRepository) GetByID(_ context.Context, id int32) (*domain.FeeType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ft, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &ft, nil
}

func (r *feeTypeRepository) FindByFilter(_ context.Context, f domain.FeeFilter) (*domain.FeeType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ft := range r.items {
		if ft.Filter() == f {
			out := ft
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *feeTypeRepository) List(_ context.Context) ([]domain.FeeType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.FeeType, 0, len(r.items))
	for _, ft := range r.items {
		out = append(out, ft)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *feeTypeRepository) Update(_ context.Context, ft *domain.FeeType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[ft.ID]; !ok {
		return repository.ErrNotFound
	}
	r.items[ft.ID] = *ft
	return nil
}

func (r *feeTypeRepository) Delete(_ context.Context, id int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *feeTypeRepository) Count(_ context.Context) (int32, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int32(len(r.items)), nil
}

// --- fee labels ---

type feeLabelRepository struct {
	mu     sync.RWMutex
	nextID int32
	items  map[int32]domain.FeeLabel
}

func NewFeeLabelRepository() repository.FeeLabelRepository {
	return &feeLabelRepository{items: make(map[int32]domain.FeeLabel)}
}

func (r *feeLabelRepository) Create(_ context.Context, label *domain.FeeLabel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	label.ID = r.nextID
	label.CreatedOn = today()
	r.items[label.ID] = *label
	return nil
}

func (r *feeLabelRepository) List(_ context.Context) ([]domain.FeeLabel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.FeeLabel, 0, len(r.items))
	for _, l := range r.items {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *feeLabelRepository) Delete(_ context.Context, id int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *feeLabelRepository) Count(_ context.Context) (int32, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int32(len(r.items)), nil
}

// --- discounts ---

type discountRepository struct {
	mu     sync.RWMutex
	nextID int32
	items  map[int32]domain.Discount
}

func NewDiscountRepository() repository.DiscountRepository {
	return &discountRepository{items: make(map[int32]domain.Discount)}
}

func (r *discountRepository) Create(_ context.Context, d *domain.Discount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	d.ID = r.nextID
	if d.CreatedOn == "" {
		d.CreatedOn = today()
	}
	r.items[d.ID] = *d
	return nil
}

func (r *discountRepository) GetByID(_ context.Context, id int32) (*domain.Discount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (r *discountRepository) List(_ context.Context) ([]domain.Discount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Discount, 0, len(r.items))
	for _, d := range r.items {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *discountRepository) ListMatching(_ context.Context, studentName string, f domain.FeeFilter) ([]domain.Discount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Discount
	for _, d := range r.items {
		if d.Matches(studentName, f) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *discountRepository) Update(_ context.Context, d *domain.Discount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[d.ID]; !ok {
		return repository.ErrNotFound
	}
	r.items[d.ID] = *d
	return nil
}

func (r *discountRepository) Delete(_ context.Context, id int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *discountRepository) Count(_ context.Context) (int32, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int32(len(r.items)), nil
}

// --- collections ---

type collectionRepository struct {
	mu         sync.RWMutex
	nextSerial int32
	items      map[int32]domain.Collection
}

func NewCollectionRepository() repository.CollectionRepository {
	return &collectionRepository{items: make(map[int32]domain.Collection)}
}

func (r *collectionRepository) Create(_ context.Context, col *domain.Collection, settleSerials []int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSerial++
	col.Serial = r.nextSerial
	col.CreatedOn = today()
	r.items[col.Serial] = cloneCollection(*col)

	// Same lock covers both writes, matching the postgres transaction.
	for _, serial := range settleSerials {
		if prior, ok := r.items[serial]; ok {
			prior.TotalDue = 0
			prior.PayableDue = 0
			r.items[serial] = prior
		}
	}
	return nil
}

func (r *collectionRepository) GetBySerial(_ context.Context, serial int32) (*domain.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	col, ok := r.items[serial]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneCollection(col)
	return &out, nil
}

func (r *collectionRepository) List(_ context.Context) ([]domain.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Collection, 0, len(r.items))
	for _, col := range r.items {
		out = append(out, cloneCollection(col))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Serial < out[j].Serial })
	return out, nil
}

func (r *collectionRepository) ListByStudent(_ context.Context, studentID int32) ([]domain.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Collection
	for _, col := range r.items {
		if col.StudentID == studentID {
			out = append(out, cloneCollection(col))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Serial < out[j].Serial })
	return out, nil
}

func (r *collectionRepository) ListOutstanding(_ context.Context, studentID int32, f domain.FeeFilter) ([]domain.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Collection
	for _, col := range r.items {
		if col.StudentID == studentID && col.TotalDue > 0 &&
			col.Class == f.Class && col.Group == f.Group &&
			col.Section == f.Section && col.Session == f.Session {
			out = append(out, cloneCollection(col))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Serial < out[j].Serial })
	return out, nil
}

func (r *collectionRepository) Update(_ context.Context, serial int32, patch domain.CollectionPatch) (*domain.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	col, ok := r.items[serial]
	if !ok {
		return nil, repository.ErrNotFound
	}

	if patch.TotalPayable != nil {
		col.TotalPayable = *patch.TotalPayable
	}
	if patch.PaidAmount != nil {
		col.PaidAmount = *patch.PaidAmount
	}
	if patch.TotalDue != nil {
		col.TotalDue = utils.ClampNonNegative(*patch.TotalDue)
	}
	if patch.PayDate != nil {
		col.PayDate = *patch.PayDate
	}
	if patch.PaymentMethod != nil {
		col.PaymentMethod = *patch.PaymentMethod
	}
	if patch.FeeTypes != nil {
		col.FeeTypes = append([]string(nil), patch.FeeTypes...)
	}
	col.PayableDue = utils.ClampNonNegative(col.TotalPayable - col.PaidAmount)

	r.items[serial] = cloneCollection(col)
	out := cloneCollection(col)
	return &out, nil
}

func (r *collectionRepository) Delete(_ context.Context, serial int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[serial]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, serial)
	return nil
}

func cloneCollection(col domain.Collection) domain.Collection {
	col.FeeTypes = append([]string(nil), col.FeeTypes...)
	return col
}

// --- students ---

type studentRepository struct {
	mu     sync.RWMutex
	nextID int32
	items  map[int32]domain.Student
}

func NewStudentRepository() repository.StudentRepository {
	return &studentRepository{items: make(map[int32]domain.Student)}
}

func (r *studentRepository) Create(_ context.Context, s *domain.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	s.ID = r.nextID
	r.items[s.ID] = *s
	return nil
}

func (r *studentRepository) GetByID(_ context.Context, id int32) (*domain.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *studentRepository) List(_ context.Context) ([]domain.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Student, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *studentRepository) ListWithDues(_ context.Context) ([]domain.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Student
	for _, s := range r.items {
		if s.FeesDue > 0 {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *studentRepository) UpdateFeesDue(_ context.Context, id int32, feesDue float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.FeesDue = feesDue
	r.items[id] = s
	return nil
}

func (r *studentRepository) Count(_ context.Context) (int32, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int32(len(r.items)), nil
}
