package profile

import (
	"encoding/json"

	"github.com/dmitrymomot/appleauth/pkg/idtoken"
)

// Prune returns a copy of m without nil values, empty strings, empty slices,
// and empty maps. Nested maps are pruned first, so a map emptied by pruning
// is itself dropped. Pruning an already pruned map changes nothing.
func Prune(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			if val == "" {
				continue
			}
			out[k] = val
		case map[string]any:
			nested := Prune(val)
			if len(nested) == 0 {
				continue
			}
			out[k] = nested
		case []any:
			if len(val) == 0 {
				continue
			}
			out[k] = val
		default:
			out[k] = v
		}
	}
	return out
}

// Extra builds the auxiliary payload exposed alongside the profile: the full
// verified claims, the raw parsed user object, and the original compact
// token, pruned of empty entries.
func Extra(claims *idtoken.Claims, rawUser, rawToken string) map[string]any {
	return Prune(map[string]any{
		"raw_info": map[string]any{
			"id_info":   claimsMap(claims),
			"user_info": jsonMap(rawUser),
			"id_token":  rawToken,
		},
	})
}

func claimsMap(claims *idtoken.Claims) map[string]any {
	if claims == nil {
		return nil
	}
	buf, err := json.Marshal(claims)
	if err != nil {
		return nil
	}
	return jsonMap(string(buf))
}

func jsonMap(raw string) map[string]any {
	if raw == "" {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil
	}
	return m
}
