package mysql

import (
	"errors"
	"fmt"
	"testing"

	mysqlDriver "github.com/go-sql-driver/mysql"
)

func TestIsDuplicateOrderNumber(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "duplicate on the number index",
			err:  &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry 'OD250901143205-8317' for key 'uk_orders_number'"},
			want: true,
		},
		{
			name: "duplicate on another index",
			err:  &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry 'abc' for key 'PRIMARY'"},
			want: false,
		},
		{
			name: "deadlock",
			err:  &mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"},
			want: false,
		},
		{
			name: "wrapped driver error",
			err:  fmt.Errorf("create order: %w", &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry 'OD1' for key 'uk_orders_number'"}),
			want: true,
		},
		{
			name: "plain error",
			err:  errors.New("duplicate"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isDuplicateOrderNumber(tc.err); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
