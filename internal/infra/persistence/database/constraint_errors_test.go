package database

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintClassifiers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		unique  bool
		foreign bool
		notNull bool
		check   bool
	}{
		{name: "nil", err: nil},
		{name: "gorm duplicated key", err: fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), unique: true},
		{name: "sqlite unique", err: stderrors.New("constraint failed: UNIQUE constraint failed: users.username (2067)"), unique: true},
		{name: "mysql duplicate", err: stderrors.New("Error 1062 (23000): Duplicate entry 'ravi' for key 'username'"), unique: true},
		{name: "postgres duplicate", err: stderrors.New(`ERROR: duplicate key value violates unique constraint "idx_users_username" (SQLSTATE 23505)`), unique: true},
		{name: "foreign key", err: stderrors.New("FOREIGN KEY constraint failed"), foreign: true},
		{name: "not null", err: stderrors.New("NOT NULL constraint failed: orders.username"), notNull: true},
		{name: "check", err: stderrors.New("CHECK constraint failed: chk_product_ratings_rating"), check: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, isUniqueConstraintViolation(tt.err))
			assert.Equal(t, tt.foreign, isForeignKeyConstraintViolation(tt.err))
			assert.Equal(t, tt.notNull, isNotNullConstraintViolation(tt.err))
			assert.Equal(t, tt.check, isCheckConstraintViolation(tt.err))
		})
	}
}
