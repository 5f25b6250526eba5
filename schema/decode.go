package schema

import (
	"encoding/json"
	"fmt"
	"sort"
)

type (
	rawDatabase struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Settings struct {
			Name string `json:"name"`
		} `json:"settings"`
		Schema map[string]json.RawMessage `json:"schema"`
	}

	rawTable struct {
		Caption string                                `json:"caption"`
		Fields  map[string]map[string]json.RawMessage `json:"fields"`
	}

	rawField struct {
		Caption    string `json:"caption"`
		Base       string `json:"base"`
		Required   bool   `json:"required"`
		RefTypeID    string `json:"refTypeId"`
		DatabaseID   string `json:"dbId"`
		DatabaseName string `json:"dbName"`
		Composition  bool   `json:"composition"`
	}
)

// Decode decodes a database schema as returned by the Ninox REST API.
// Captions default to element IDs; non string code properties are ignored.
func Decode(data []byte) (*Database, error) {
	raw := &rawDatabase{}
	if err := json.Unmarshal(data, raw); err != nil {
		return nil, fmt.Errorf("failed to decode database schema: %w", err)
	}
	ret := &Database{ID: raw.ID, Name: raw.Settings.Name}
	if ret.Name == "" {
		ret.Name = raw.Name
	}
	if ret.Name == "" {
		ret.Name = ret.ID
	}
	ret.Code = decodeCode(DatabaseLevel, raw.Schema)

	types := map[string]map[string]json.RawMessage{}
	if encoded, ok := raw.Schema["types"]; ok {
		if err := json.Unmarshal(encoded, &types); err != nil {
			return nil, fmt.Errorf("failed to decode schema types: %w", err)
		}
	}
	for _, tableID := range sortedIDs(types) {
		table, err := decodeTable(tableID, types[tableID])
		if err != nil {
			return nil, err
		}
		ret.Tables = append(ret.Tables, table)
	}
	return ret, nil
}

func decodeTable(id string, properties map[string]json.RawMessage) (*Table, error) {
	encoded, _ := json.Marshal(properties)
	raw := &rawTable{}
	if err := json.Unmarshal(encoded, raw); err != nil {
		return nil, fmt.Errorf("failed to decode table %v: %w", id, err)
	}
	ret := &Table{ID: id, Name: orDefault(raw.Caption, id), Code: decodeCode(TableLevel, properties)}
	for _, fieldID := range sortedIDs(raw.Fields) {
		field, err := decodeField(fieldID, raw.Fields[fieldID])
		if err != nil {
			return nil, fmt.Errorf("failed to decode table %v: %w", id, err)
		}
		ret.Fields = append(ret.Fields, field)
	}
	return ret, nil
}

func decodeField(id string, properties map[string]json.RawMessage) (*Field, error) {
	encoded, _ := json.Marshal(properties)
	raw := &rawField{}
	if err := json.Unmarshal(encoded, raw); err != nil {
		return nil, fmt.Errorf("failed to decode field %v: %w", id, err)
	}
	return &Field{
		ID:              id,
		Name:            orDefault(raw.Caption, id),
		Base:            raw.Base,
		Required:        raw.Required,
		RefTableID:      raw.RefTypeID,
		RefDatabaseID:   raw.DatabaseID,
		RefDatabaseName: raw.DatabaseName,
		Composition:     raw.Composition,
		Code:            decodeCode(FieldLevel, properties),
	}, nil
}

func decodeCode(level Level, properties map[string]json.RawMessage) []*Code {
	var result []*Code
	for _, codeType := range CodeTypes(level) {
		encoded, ok := properties[string(codeType)]
		if !ok {
			continue
		}
		var body string
		if err := json.Unmarshal(encoded, &body); err != nil || body == "" {
			continue
		}
		result = append(result, &Code{Type: codeType, Body: body})
	}
	return result
}

// sortedIDs orders Ninox IDs the way the platform assigns them: A..Z, then AA..
func sortedIDs[T any](items map[string]T) []string {
	var result = make([]string, 0, len(items))
	for id := range items {
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool {
		if len(result[i]) != len(result[j]) {
			return len(result[i]) < len(result[j])
		}
		return result[i] < result[j]
	})
	return result
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
