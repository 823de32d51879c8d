package market

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"FinDash/internal/domain/models"
)

type member struct {
	key   string
	value json.RawMessage
}

// objectMembers returns the members of a JSON object in document order.
func objectMembers(raw []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var out []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("member %q: %w", key, err)
		}
		out = append(out, member{key: key, value: v})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

func isObject(raw json.RawMessage) bool {
	b := bytes.TrimSpace(raw)
	return len(b) > 0 && b[0] == '{'
}

// decodeSnapshot accepts {SYM:{...}} or {"assets":{SYM:{...}}, "regime":{...}}.
// The backend regime block is ignored; regime is derived per asset.
func decodeSnapshot(raw []byte) ([]models.AssetSnapshot, error) {
	members, err := objectMembers(raw)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if m.key != "assets" {
			continue
		}
		// Any assets member marks the wrapped shape; a non-object holds no assets.
		if !isObject(m.value) {
			return []models.AssetSnapshot{}, nil
		}
		if members, err = objectMembers(m.value); err != nil {
			return nil, fmt.Errorf("assets: %w", err)
		}
		break
	}

	assets := make([]models.AssetSnapshot, 0, len(members))
	for _, m := range members {
		if !isObject(m.value) {
			continue
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(m.value, &fields); err != nil {
			return nil, fmt.Errorf("asset %q: %w", m.key, err)
		}
		assets = append(assets, models.AssetSnapshot{
			Symbol:        m.key,
			Price:         decimalOrZero(fields["price"]),
			TotalReturn:   numberOrZero(fields["total_return"]),
			Volatility:    numberOrZero(fields["volatility"]),
			Trend:         models.Trend(stringOrEmpty(fields["trend"])),
			TrendStrength: numberOrZero(fields["trend_strength"]),
			Momentum:      numberOrZero(fields["momentum"]),
			Signal:        stringOrEmpty(fields["signal"]),
		})
	}
	return assets, nil
}

// numberOrZero reads a JSON number or numeric string; anything else is zero.
func numberOrZero(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}

func decimalOrZero(raw json.RawMessage) decimal.Decimal {
	if len(raw) == 0 {
		return decimal.Zero
	}
	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		return decimal.Zero
	}
	return d
}

func stringOrEmpty(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

type seriesPayload struct {
	Labels []string   `json:"labels"`
	Close  []*float64 `json:"close"`
	MA10   []*float64 `json:"ma10"`
	MA30   []*float64 `json:"ma30"`
}

func decodeSeries(raw []byte) (models.Series, error) {
	var p seriesPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return models.Series{}, err
	}
	return models.Series{Labels: p.Labels, Close: p.Close, MA10: p.MA10, MA30: p.MA30}, nil
}
