package query_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoicer/internal/http/query"
)

func TestRange(t *testing.T) {
	type testCase struct {
		name    string
		url     string
		want    query.DateRange
		wantErr string
	}

	tests := []testCase{
		{
			name: "Valid",
			url:  "/?start_date=2025-01-01&end_date=2025-01-31",
			want: query.DateRange{StartDate: "2025-01-01", EndDate: "2025-01-31"},
		},
		{
			name:    "Missing",
			url:     "/?start_date=2025-01-01",
			wantErr: "invalid query parameters: end_date (required)",
		},
		{
			name:    "Malformed",
			url:     "/?start_date=01/01/2025&end_date=2025-01-31",
			wantErr: "invalid query parameters: start_date (datetime)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := query.Range(httptest.NewRequest("GET", tt.url, nil))

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatement(t *testing.T) {
	const id = "6f1c2a7e-3b4d-4e5f-8a9b-0c1d2e3f4a5b"

	got, err := query.Statement(httptest.NewRequest("GET",
		"/?customer_id="+id+"&start_date=2025-01-01&end_date=2025-01-31&paid_amount_override=120.5", nil))
	require.NoError(t, err)

	assert.Equal(t, id, got.CustomerID.String())
	assert.Equal(t, "2025-01-01", got.StartDate)
	assert.Equal(t, "2025-01-31", got.EndDate)
	require.NotNil(t, got.PaidAmountOverride)
	assert.Equal(t, 120.5, *got.PaidAmountOverride)

	got, err = query.Statement(httptest.NewRequest("GET",
		"/?customer_id="+id+"&start_date=2025-01-01&end_date=2025-01-31", nil))
	require.NoError(t, err)
	assert.Nil(t, got.PaidAmountOverride)

	_, err = query.Statement(httptest.NewRequest("GET",
		"/?customer_id=nope&start_date=2025-01-01&end_date=2025-01-31&paid_amount_override=lots", nil))
	assert.EqualError(t, err, "invalid query parameters: customer_id (uuid), paid_amount_override (numeric)")
}
