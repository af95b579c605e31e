package api

import (
	"bytes"
	"encoding/json"
	"errors"
)

// The same logical endpoint may be fronted differently depending on
// deployment: a bare payload, a {data: ...} envelope, or a doubly nested
// {data: {data: ...}} envelope. Everything in this file exists to collapse
// that variance into one canonical shape at the client boundary.

var ErrInvalidAuthResponse = errors.New("invalid login response from server: missing user data")

// unwrapEnvelope returns the inner value when the body is an object with
// exactly one key "data", and the body as-is otherwise. Envelopes that carry
// meta alongside data are intentionally left intact for the paginated
// normalizers.
func unwrapEnvelope(raw json.RawMessage) json.RawMessage {
	obj, ok := asObject(raw)
	if !ok {
		return raw
	}
	if len(obj) == 1 {
		if inner, found := obj["data"]; found {
			return inner
		}
	}
	return raw
}

// asObject decodes raw as a JSON object, reporting false for any other type.
func asObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// asArray reports whether raw is a JSON array.
func asArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// coerceMeta validates server pagination metadata, synthesizing it from the
// observed item count when the server sent none (or sent garbage).
func coerceMeta(raw json.RawMessage, count int) Meta {
	synthesized := Meta{TotalCount: count, TotalPages: 1, Page: 1, Limit: count}

	obj, ok := asObject(raw)
	if !ok {
		return synthesized
	}
	for _, key := range []string{"totalCount", "totalPages", "page", "limit"} {
		if _, found := obj[key]; !found {
			return synthesized
		}
	}

	var m struct {
		TotalCount json.Number `json:"totalCount"`
		TotalPages json.Number `json:"totalPages"`
		Page       json.Number `json:"page"`
		Limit      json.Number `json:"limit"`
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return synthesized
	}

	return Meta{
		TotalCount: numberOr(m.TotalCount, 0),
		TotalPages: numberOr(m.TotalPages, 1),
		Page:       numberOr(m.Page, 1),
		Limit:      numberOr(m.Limit, count),
	}
}

func numberOr(n json.Number, fallback int) int {
	v, err := n.Int64()
	if err != nil || v == 0 {
		return fallback
	}
	return int(v)
}

// NormalizePaginatedAttachments accepts any of: a top-level array, a
// top-level {data: [...], meta, directories}, or a doubly nested
// {data: {data: [...], meta}}, and produces the canonical
// {Data, Directories, Meta} shape. Feeding it the same logical content in
// any of the three envelopes yields an identical result.
func NormalizePaginatedAttachments(raw json.RawMessage) PaginatedAttachments {
	empty := PaginatedAttachments{
		Data:        []AttachmentItem{},
		Directories: []DirectoryItem{},
		Meta:        coerceMeta(nil, 0),
	}

	if asArray(raw) {
		var items []AttachmentItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return empty
		}
		return PaginatedAttachments{
			Data:        items,
			Directories: []DirectoryItem{},
			Meta:        coerceMeta(nil, len(items)),
		}
	}

	base, ok := asObject(raw)
	if !ok {
		return empty
	}

	directories := decodeDirectories(base["directories"])
	topData := base["data"]

	if asArray(topData) {
		var items []AttachmentItem
		if err := json.Unmarshal(topData, &items); err != nil {
			return empty
		}
		return PaginatedAttachments{
			Data:        items,
			Directories: directories,
			Meta:        coerceMeta(base["meta"], len(items)),
		}
	}

	if nested, ok := asObject(topData); ok {
		if nestedData := nested["data"]; asArray(nestedData) {
			var items []AttachmentItem
			if err := json.Unmarshal(nestedData, &items); err != nil {
				return empty
			}
			nestedDirs := decodeDirectories(nested["directories"])
			if len(nestedDirs) == 0 {
				nestedDirs = directories
			}
			meta := nested["meta"]
			if meta == nil {
				meta = base["meta"]
			}
			return PaginatedAttachments{
				Data:        items,
				Directories: nestedDirs,
				Meta:        coerceMeta(meta, len(items)),
			}
		}
	}

	return PaginatedAttachments{
		Data:        []AttachmentItem{},
		Directories: directories,
		Meta:        coerceMeta(base["meta"], 0),
	}
}

func decodeDirectories(raw json.RawMessage) []DirectoryItem {
	if !asArray(raw) {
		return []DirectoryItem{}
	}
	var dirs []DirectoryItem
	if err := json.Unmarshal(raw, &dirs); err != nil {
		return []DirectoryItem{}
	}
	return dirs
}

// NormalizePaginatedRemarks applies the same envelope tolerance to remark
// listings: bare array, {data, meta}, or {data: {data, meta}}.
func NormalizePaginatedRemarks(raw json.RawMessage) PaginatedRemarks {
	empty := PaginatedRemarks{
		Data: []RemarkItem{},
		Meta: Meta{TotalCount: 0, TotalPages: 1, Page: 1, Limit: 0},
	}

	if asArray(raw) {
		var items []RemarkItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return empty
		}
		return PaginatedRemarks{Data: items, Meta: coerceMeta(nil, len(items))}
	}

	base, ok := asObject(raw)
	if !ok {
		return empty
	}

	topData := base["data"]
	if asArray(topData) {
		var items []RemarkItem
		if err := json.Unmarshal(topData, &items); err != nil {
			return empty
		}
		return PaginatedRemarks{Data: items, Meta: coerceMeta(base["meta"], len(items))}
	}

	if nested, ok := asObject(topData); ok {
		if nestedData := nested["data"]; asArray(nestedData) {
			var items []RemarkItem
			if err := json.Unmarshal(nestedData, &items); err != nil {
				return empty
			}
			meta := nested["meta"]
			if meta == nil {
				meta = base["meta"]
			}
			return PaginatedRemarks{Data: items, Meta: coerceMeta(meta, len(items))}
		}
	}

	return empty
}

// NormalizeAuthPayload tolerates the login-response variants seen across
// deployments: optional {data} envelope, and any of accessToken / token /
// access_token for the credential. The user object is required.
func NormalizeAuthPayload(raw json.RawMessage) (AuthPayload, error) {
	inner := raw
	if obj, ok := asObject(raw); ok {
		if data, found := obj["data"]; found {
			if _, isObj := asObject(data); isObj {
				inner = data
			}
		}
	}

	obj, ok := asObject(inner)
	if !ok {
		return AuthPayload{}, ErrInvalidAuthResponse
	}

	var token string
	for _, key := range []string{"accessToken", "token", "access_token"} {
		if rawToken, found := obj[key]; found {
			var s string
			if err := json.Unmarshal(rawToken, &s); err == nil && s != "" {
				token = s
				break
			}
		}
	}

	rawUser := obj["user"]
	if _, isObj := asObject(rawUser); !isObj {
		// Some deployments nest the profile one level further down.
		if data, ok := asObject(obj["data"]); ok {
			if nested, found := data["user"]; found {
				rawUser = nested
			} else {
				rawUser = obj["data"]
			}
		}
	}
	if _, isObj := asObject(rawUser); !isObj {
		return AuthPayload{}, ErrInvalidAuthResponse
	}

	var user User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		return AuthPayload{}, ErrInvalidAuthResponse
	}
	if user.Name == "" {
		if user.Email != "" {
			user.Name = user.Email
		} else {
			user.Name = "User"
		}
	}

	return AuthPayload{AccessToken: token, User: user}, nil
}
