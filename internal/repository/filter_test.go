package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"github.com/Freeeeeet/courier_scheduler/internal/repository/base"
)

func TestApplyListFilter(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name     string
		filter   model.ListFilter
		wantSQL  []string
		wantArgs []any
	}{
		{
			name:    "all records",
			filter:  model.ListFilter{},
			wantSQL: []string{"FROM planned_shifts"},
		},
		{
			name:     "one courier",
			filter:   model.ForUser(userID),
			wantSQL:  []string{"user_id = $1"},
			wantArgs: []any{userID},
		},
		{
			name:     "courier month",
			filter:   model.ForUserMonth(userID, 2025, 11),
			wantSQL:  []string{"user_id = $1", "date >= $2::date", "date < $3::date"},
			wantArgs: []any{userID, "2025-11-01", "2025-12-01"},
		},
		{
			name:     "december rolls into next year",
			filter:   model.ForUserMonth(userID, 2025, 12),
			wantSQL:  []string{"date >= $2::date", "date < $3::date"},
			wantArgs: []any{userID, "2025-12-01", "2026-01-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := applyListFilter(base.Builder.Select("id").From("planned_shifts"), tt.filter)
			sql, args, err := b.ToSql()
			require.NoError(t, err)

			for _, part := range tt.wantSQL {
				assert.Contains(t, sql, part)
			}
			if tt.wantArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}
