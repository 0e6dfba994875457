package database

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/utils"
)

// Table represents a database table with common methods
type Table interface {
	TableName() string
}

// whereClause builds "col1 = $1 AND col2 = $2" with columns in sorted order
// so the generated SQL is deterministic.
func whereClause(conditions map[string]interface{}) (string, []interface{}) {
	if len(conditions) == 0 {
		return "", nil
	}

	columns := make([]string, 0, len(conditions))
	for column := range conditions {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, column := range columns {
		clauses[i] = fmt.Sprintf("%s = $%d", column, i+1)
		args[i] = conditions[column]
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// Exists reports whether at least one record matches the conditions.
func Exists(ctx context.Context, q Querier, model Table, conditions map[string]interface{}) (bool, error) {
	where, args := whereClause(conditions)
	query := "SELECT 1 FROM " + model.TableName() + where + " LIMIT 1"

	start := time.Now()
	rows, err := q.QueryContext(ctx, query, args...)
	utils.LogDBQuery(query, args, time.Since(start), err)
	if err != nil {
		return false, fmt.Errorf("failed to check existence in %s: %w", model.TableName(), err)
	}
	defer rows.Close()

	found := rows.Next()
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("failed to check existence in %s: %w", model.TableName(), err)
	}
	return found, nil
}
