package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/havenhq/haven/api/internal/model"
)

// convertRecordID normalizes SurrealDB's ID representations to "table:id".
func convertRecordID(id interface{}) string {
	if str, ok := id.(string); ok {
		return str
	}
	if rid, ok := id.(models.RecordID); ok {
		return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
	}
	if rid, ok := id.(*models.RecordID); ok && rid != nil {
		return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
	}
	return fmt.Sprintf("%v", id)
}

// splitRecordID splits "table:id" into its id part for type::thing() calls.
func splitRecordID(recordID string) (table, id string) {
	if i := strings.IndexByte(recordID, ':'); i >= 0 {
		return recordID[:i], recordID[i+1:]
	}
	return "", recordID
}

// normalizeRecord prepares a SurrealDB row map for a JSON round-trip into a
// domain struct: record IDs become strings and CustomDateTime values become
// RFC 3339 strings.
func normalizeRecord(data map[string]interface{}) map[string]interface{} {
	for key, val := range data {
		switch v := val.(type) {
		case models.RecordID, *models.RecordID:
			data[key] = convertRecordID(v)
		case models.CustomDateTime:
			data[key] = v.Time.Format(time.RFC3339Nano)
		case *models.CustomDateTime:
			if v != nil {
				data[key] = v.Time.Format(time.RFC3339Nano)
			}
		case map[string]interface{}:
			data[key] = normalizeRecord(v)
		}
	}
	return data
}

// parseRecord unwraps a SurrealDB response into a single domain struct via a
// JSON round-trip. Returns (nil, nil) when the response holds no record.
func parseRecord[T any](result interface{}) (*T, error) {
	if result == nil {
		return nil, nil
	}

	// Navigate through SurrealDB response structure
	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				if len(resultData) == 0 {
					return nil, nil
				}
				result = resultData[0]
			}
		}
	}

	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, nil
		}
		result = arr[0]
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	data = normalizeRecord(data)

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var record T
	if err := json.Unmarshal(jsonBytes, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

// parseRecords unwraps a multi-row SurrealDB response. Rows that fail to
// parse are skipped.
func parseRecords[T any](results []interface{}) ([]*T, error) {
	records := make([]*T, 0)

	for _, result := range results {
		resp, ok := result.(map[string]interface{})
		if !ok {
			continue
		}
		status, ok := resp["status"].(string)
		if !ok || status != "OK" {
			continue
		}
		resultData, ok := resp["result"].([]interface{})
		if !ok {
			continue
		}
		for _, item := range resultData {
			record, err := parseRecord[T](item)
			if err == nil && record != nil {
				records = append(records, record)
			}
		}
	}

	return records, nil
}

// isConflictError reports whether an error came from a THROW inside a guard
// clause of a batch transaction.
func isConflictError(err error, tag string) bool {
	return err != nil && strings.Contains(err.Error(), tag)
}

// Query variables are passed as plain maps rather than structs so the wire
// representation matches the stored field names regardless of codec.

func scoresVar(s model.ClinicalScores) map[string]interface{} {
	return map[string]interface{}{
		"phq9": s.PHQ9,
		"gad7": s.GAD7,
	}
}

func locationVar(l model.Location) map[string]interface{} {
	return map[string]interface{}{
		"lng": l.Lng,
		"lat": l.Lat,
	}
}
