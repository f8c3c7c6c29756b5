package testutil

import (
	"context"
	"errors"
	"time"

	"github.com/gigabyte1511/blondeLawyer/internal/model"
)

var errNotFound = errors.New("not found")

// ConsultationStore хранит консультации в памяти. Связанные пользователи
// подтягиваются из переданного UserStore, как JOIN в настоящем репозитории.
type ConsultationStore struct {
	seq           int64
	Consultations map[int64]*model.Consultation
	users         *UserStore
}

func NewConsultationStore(users *UserStore) *ConsultationStore {
	return &ConsultationStore{
		Consultations: make(map[int64]*model.Consultation),
		users:         users,
	}
}

func (s *ConsultationStore) Create(_ context.Context, c *model.Consultation) error {
	s.seq++
	c.ID = s.seq
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	copied := *c
	copied.Expert = nil
	copied.Customer = nil
	s.Consultations[c.ID] = &copied
	return nil
}

func (s *ConsultationStore) GetByID(_ context.Context, id int64) (*model.Consultation, error) {
	c, ok := s.Consultations[id]
	if !ok {
		return nil, nil
	}
	return s.attach(c), nil
}

func (s *ConsultationStore) List(_ context.Context) ([]*model.Consultation, error) {
	return s.filter(func(*model.Consultation) bool { return true }), nil
}

func (s *ConsultationStore) ListByExpert(_ context.Context, expertID int64) ([]*model.Consultation, error) {
	return s.filter(func(c *model.Consultation) bool { return c.ExpertID == expertID }), nil
}

func (s *ConsultationStore) ListByCustomer(_ context.Context, customerID int64) ([]*model.Consultation, error) {
	return s.filter(func(c *model.Consultation) bool { return c.CustomerID == customerID }), nil
}

func (s *ConsultationStore) ListByUser(_ context.Context, userID int64) ([]*model.Consultation, error) {
	return s.filter(func(c *model.Consultation) bool {
		return c.ExpertID == userID || c.CustomerID == userID
	}), nil
}

func (s *ConsultationStore) ListByExpertOnDate(_ context.Context, expertID int64, day time.Time) ([]*model.Consultation, error) {
	return s.filter(func(c *model.Consultation) bool {
		if c.ExpertID != expertID {
			return false
		}
		scheduled := c.ScheduledFor.In(day.Location())
		y1, m1, d1 := scheduled.Date()
		y2, m2, d2 := day.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}), nil
}

func (s *ConsultationStore) ListPendingScheduledBefore(_ context.Context, before time.Time) ([]*model.Consultation, error) {
	return s.filter(func(c *model.Consultation) bool {
		return c.Status == model.ConsultationStatusPending && c.ScheduledFor.Before(before)
	}), nil
}

func (s *ConsultationStore) Update(_ context.Context, c *model.Consultation) error {
	if _, ok := s.Consultations[c.ID]; !ok {
		return errNotFound
	}
	c.UpdatedAt = time.Now()
	copied := *c
	copied.Expert = nil
	copied.Customer = nil
	s.Consultations[c.ID] = &copied
	return nil
}

func (s *ConsultationStore) UpdateStatus(_ context.Context, id int64, status model.ConsultationStatus) error {
	c, ok := s.Consultations[id]
	if !ok {
		return errNotFound
	}
	c.Status = status
	c.UpdatedAt = time.Now()
	return nil
}

func (s *ConsultationStore) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := s.Consultations[id]; !ok {
		return false, nil
	}
	delete(s.Consultations, id)
	return true, nil
}

func (s *ConsultationStore) filter(keep func(*model.Consultation) bool) []*model.Consultation {
	var result []*model.Consultation
	for id := int64(1); id <= s.seq; id++ {
		if c, ok := s.Consultations[id]; ok && keep(c) {
			result = append(result, s.attach(c))
		}
	}
	return result
}

func (s *ConsultationStore) attach(c *model.Consultation) *model.Consultation {
	copied := *c
	if expert, ok := s.users.Users[c.ExpertID]; ok {
		expertCopy := *expert
		copied.Expert = &expertCopy
	}
	if customer, ok := s.users.Users[c.CustomerID]; ok {
		customerCopy := *customer
		copied.Customer = &customerCopy
	}
	return &copied
}
