package dto_test

import (
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/model"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		CreatedBy: "creator",
		UpdatedBy: "modifier",
	})

	assert.Equal(t, createdAt.Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, updatedAt.Format(constant.DateFormat), metadata.UpdatedAt)
	assert.Equal(t, "creator", metadata.CreatedBy)
	assert.Equal(t, "modifier", metadata.UpdatedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "check_in_date",
				"sort_dir": "asc",
			},
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "check_in_date", SortDir: "ASC"},
		},
		{
			name:           "with default request enabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:        "with default request disabled and no parameters",
			queryParams: map[string]string{},
			expected:    dto.QueryParams{},
		},
		{
			name:           "with invalid page and limit",
			queryParams:    map[string]string{"page": "invalid", "limit": "-10"},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "with unknown sort direction",
			queryParams:    map[string]string{"sort_dir": "sideways"},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := url.Values{}
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}

			req := httptest.NewRequest("GET", "/v1/bookings?"+query.Encode(), nil)

			queryParams := &dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, *queryParams)
		})
	}
}

func TestQueryParams_ApplySort(t *testing.T) {
	allowed := map[string]string{
		"created_at":    "bookings.created_at",
		"check_in_date": "bookings.check_in_date",
	}

	tests := []struct {
		name     string
		params   dto.QueryParams
		expected dto.QueryParams
	}{
		{
			name:     "whitelisted column",
			params:   dto.QueryParams{SortBy: "check_in_date", SortDir: dto.SortDirAsc},
			expected: dto.QueryParams{SortBy: "bookings.check_in_date", SortDir: dto.SortDirAsc},
		},
		{
			name:     "unknown column falls back to newest first",
			params:   dto.QueryParams{SortBy: "password; DROP TABLE bookings"},
			expected: dto.QueryParams{SortBy: "bookings.created_at", SortDir: dto.SortDirDesc},
		},
		{
			name:     "empty",
			params:   dto.QueryParams{},
			expected: dto.QueryParams{SortBy: "bookings.created_at", SortDir: dto.SortDirDesc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.params
			params.ApplySort(allowed, "bookings.created_at")

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "room_id", Value: "room-1", Operator: dto.FilterOperatorEq, Table: "bookings"},
			wantWhere: "bookings.room_id = :room_id",
			wantArgs:  map[string]any{"room_id": "room-1"},
		},
		{
			name:      "less eq with arg name",
			filter:    dto.Filter{ArgName: "range_end", Field: "check_in_date", Value: "2025-03-03", Operator: dto.FilterOperatorLessEq, Table: "bookings"},
			wantWhere: "bookings.check_in_date <= :range_end",
			wantArgs:  map[string]any{"range_end": "2025-03-03"},
		},
		{
			name:      "not in slice",
			filter:    dto.Filter{Field: "status_id", Value: []int{3, 4}, Operator: dto.FilterOperatorNotIn, Table: "bookings"},
			wantWhere: "bookings.status_id NOT IN (:status_id_0, :status_id_1) ",
			wantArgs:  map[string]any{"status_id_0": 3, "status_id_1": 4},
		},
		{
			name: "plain query carries args",
			filter: dto.Filter{
				Value:    "rooms.status_id <> :maintenance",
				Operator: dto.FilterPlainQuery,
				Args:     map[string]any{"maintenance": 3},
			},
			wantWhere: "(rooms.status_id <> :maintenance)",
			wantArgs:  map[string]any{"maintenance": 3},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "notes", Operator: dto.FilterIsNull},
			wantWhere: "notes IS NULL",
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

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "room_id", Value: "room-1", Operator: dto.FilterOperatorEq, Table: "bookings"},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "user_id", Value: "user-1", Operator: dto.FilterOperatorEq},
					dto.Filter{ArgName: "other", Field: "user_id", Value: "user-2", Operator: dto.FilterOperatorEq},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.room_id = :room_id AND (user_id = :user_id OR user_id = :other))", where)
	assert.Equal(t, map[string]any{"room_id": "room-1", "user_id": "user-1", "other": "user-2"}, args)

	empty := dto.FilterGroup{}
	where, _ = empty.GetWhereClause()
	assert.Empty(t, where)
}
