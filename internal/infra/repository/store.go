package repository

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
	"github.com/BruksfildServices01/escala-voluntarios/internal/models"
	"github.com/BruksfildServices01/escala-voluntarios/internal/validators"
)

// store carries the handle shared by every GORM repository. Inside a
// transaction db is the transaction handle.
type store struct {
	db  *gorm.DB
	log *zap.Logger
}

func newStore(db *gorm.DB, log *zap.Logger) store {
	if log == nil {
		log = zap.NewNop()
	}
	return store{db: db, log: log}
}

// fail logs the store failure with full context and hides it behind
// store_unavailable.
func (s store) fail(op string, err error, fields ...zap.Field) error {
	s.log.Error("store failure",
		append([]zap.Field{zap.String("op", op), zap.Error(err)}, fields...)...,
	)
	return httperr.Store(op, err)
}

// passBusiness lets taxonomy errors raised inside a transaction through
// untouched.
func (s store) passBusiness(op string, err error) error {
	if err == nil {
		return nil
	}
	var be httperr.BusinessError
	if errors.As(err, &be) {
		return err
	}
	return s.fail(op, err)
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// volunteerByPhone procura primeiro pelo texto exato, que é como ficam os
// cadastros legados em conflito, e depois pelos dígitos.
func (s store) volunteerByPhone(ctx context.Context, phone string) (*models.Volunteer, error) {
	raw := strings.TrimSpace(phone)
	candidates := []string{raw}
	if digits := validators.NormalizePhone(raw); digits != raw {
		candidates = append(candidates, digits)
	}

	for _, p := range candidates {
		if p == "" {
			continue
		}
		var v models.Volunteer
		err := s.db.WithContext(ctx).Where("telefone = ?", p).First(&v).Error
		if err == nil {
			return &v, nil
		}
		if !notFound(err) {
			return nil, s.fail("find volunteer by phone", err)
		}
	}
	return nil, nil
}
