package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"reservation/shared/dto"
)

func TestFilter_GetWhereClause(t *testing.T) {
	at := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "room_id", Value: "r1", Operator: dto.FilterOperatorEq, Table: "bookings"},
			wantWhere: "bookings.room_id = :room_id",
			wantArgs:  map[string]any{"room_id": "r1"},
		},
		{
			name:      "strict less with arg name",
			filter:    dto.Filter{ArgName: "period_end", Field: "check_in", Value: at, Operator: dto.FilterOperatorLess},
			wantWhere: "check_in < :period_end",
			wantArgs:  map[string]any{"period_end": at},
		},
		{
			name:      "strict greater",
			filter:    dto.Filter{ArgName: "period_start", Field: "check_out", Value: at, Operator: dto.FilterOperatorGreater},
			wantWhere: "check_out > :period_start",
			wantArgs:  map[string]any{"period_start": at},
		},
		{
			name:      "less or equal",
			filter:    dto.Filter{Field: "expires_at", Value: at, Operator: dto.FilterOperatorLessEq},
			wantWhere: "expires_at <= :expires_at",
			wantArgs:  map[string]any{"expires_at": at},
		},
		{
			name:      "in slice",
			filter:    dto.Filter{Field: "status", Value: []string{"deposited", "fully_paid"}, Operator: dto.FilterOperatorIn},
			wantWhere: "status IN (:status_0, :status_1) ",
			wantArgs:  map[string]any{"status_0": "deposited", "status_1": "fully_paid"},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "status", Value: "x", Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_Nested(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "room_id", Value: "r1", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "status", Value: "deposited", Operator: dto.FilterOperatorEq},
					dto.Filter{ArgName: "soft_status", Field: "status", Value: "awaiting_deposit_payment", Operator: dto.FilterOperatorEq},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(room_id = :room_id AND (status = :status OR status = :soft_status))", where)
	assert.Len(t, args, 3)

	empty := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}
	where, _ = empty.GetWhereClause()
	assert.Empty(t, where)
}

func TestSortDirectionConstants(t *testing.T) {
	assert.Equal(t, "ASC", dto.SortDirAsc)
	assert.Equal(t, "DESC", dto.SortDirDesc)
}
