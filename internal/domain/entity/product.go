package entity

import (
	"bytes"
	"encoding/json"
	"maps"
	"strconv"

	"github.com/pkg/errors"
)

const (
	keyID             = "id"
	keyName           = "name"
	keyCategory       = "category"
	keyPrice          = "price"
	keyUnit           = "unit"
	keyStock          = "stock"
	keyDescription    = "description"
	keyImage          = "image"
	keySellerUsername = "seller_username"
	keySellerType     = "seller_type"
	keyLocation       = "location"
	keyFarmer         = "farmer"
	keyPincode        = "pincode"
	keyCreatedAt      = "created_at"
)

// SellerTypeFarmer marks products listed by farmer accounts.
const SellerTypeFarmer = "farmer"

// Product is a catalog entry from a JSON product file. Fields the marketplace
// does not know about are kept in Extra and written back unchanged.
type Product struct {
	ID             string
	Name           string
	Category       string
	Price          float64
	Unit           string
	Stock          int
	Description    string
	Image          string
	SellerUsername string
	SellerType     string
	Location       string
	Farmer         string
	Pincode        string
	CreatedAt      string

	Extra map[string]json.RawMessage

	numericID bool
	present   map[string]bool
	// raw numbers as read, written back while Price/Stock keep their decoded value
	rawPrice  json.RawMessage
	rawStock  json.RawMessage
	readPrice float64
	readStock int
}

// IsFarmerProduct reports whether the product was listed by a farmer account.
func (p *Product) IsFarmerProduct() bool {
	return p.SellerType == SellerTypeFarmer && p.SellerUsername != ""
}

// Clone returns a deep copy so callers can enrich products without touching the store.
func (p *Product) Clone() *Product {
	cloned := *p
	cloned.Extra = maps.Clone(p.Extra)
	cloned.present = maps.Clone(p.present)

	return &cloned
}

// UnmarshalJSON reads known fields and keeps everything else in Extra.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "product must be a JSON object")
	}

	*p = Product{present: make(map[string]bool)}

	if v, ok := raw[keyID]; ok {
		id, numeric, err := decodeID(v)
		if err != nil {
			return err
		}
		p.ID, p.numericID = id, numeric
	}

	strFields := map[string]*string{
		keyName:           &p.Name,
		keyCategory:       &p.Category,
		keyUnit:           &p.Unit,
		keyDescription:    &p.Description,
		keyImage:          &p.Image,
		keySellerUsername: &p.SellerUsername,
		keySellerType:     &p.SellerType,
		keyLocation:       &p.Location,
		keyFarmer:         &p.Farmer,
		keyPincode:        &p.Pincode,
		keyCreatedAt:      &p.CreatedAt,
	}
	for key, dst := range strFields {
		v, ok := raw[key]
		if !ok {
			continue
		}
		s, isString := decodeString(v)
		if !isString {
			// keep odd shapes (numbers, objects) verbatim
			continue
		}
		*dst = s
		p.present[key] = true
		delete(raw, key)
	}

	if v, ok := raw[keyPrice]; ok {
		if f, ok := decodeNumber(v); ok {
			p.Price, p.readPrice, p.rawPrice = f, f, v
			p.present[keyPrice] = true
			delete(raw, keyPrice)
		}
	}
	if v, ok := raw[keyStock]; ok {
		if f, ok := decodeNumber(v); ok {
			p.Stock = int(f)
			p.readStock, p.rawStock = p.Stock, v
			p.present[keyStock] = true
			delete(raw, keyStock)
		}
	}

	delete(raw, keyID)
	if len(raw) > 0 {
		p.Extra = raw
	}

	return nil
}

// MarshalJSON writes known fields over the preserved unknown ones.
func (p Product) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Extra)+14)
	for k, v := range p.Extra {
		out[k] = v
	}

	if p.numericID {
		if n, err := strconv.ParseFloat(p.ID, 64); err == nil {
			out[keyID] = n
		} else {
			out[keyID] = p.ID
		}
	} else {
		out[keyID] = p.ID
	}

	p.putString(out, keyName, p.Name)
	p.putString(out, keyCategory, p.Category)
	p.putString(out, keyUnit, p.Unit)
	p.putString(out, keyDescription, p.Description)
	p.putString(out, keyImage, p.Image)
	p.putString(out, keySellerUsername, p.SellerUsername)
	p.putString(out, keySellerType, p.SellerType)
	p.putString(out, keyLocation, p.Location)
	p.putString(out, keyFarmer, p.Farmer)
	p.putString(out, keyPincode, p.Pincode)
	p.putString(out, keyCreatedAt, p.CreatedAt)
	switch {
	case p.present[keyPrice] && p.Price == p.readPrice:
		out[keyPrice] = p.rawPrice
	case p.written(keyPrice) || p.Price != 0:
		out[keyPrice] = p.Price
	}
	switch {
	case p.present[keyStock] && p.Stock == p.readStock:
		out[keyStock] = p.rawStock
	case p.written(keyStock) || p.Stock != 0:
		out[keyStock] = p.Stock
	}

	return json.Marshal(out)
}

// written reports whether key belongs in the output even when zero. Products built
// in code, not read from a file, always carry their numeric fields.
func (p *Product) written(key string) bool {
	return p.present == nil || p.present[key]
}

func (p *Product) putString(out map[string]any, key, value string) {
	if value != "" || p.present[key] {
		out[key] = value
	}
}

func decodeID(v json.RawMessage) (string, bool, error) {
	if s, ok := decodeString(v); ok {
		return s, false, nil
	}
	trimmed := bytes.TrimSpace(v)
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return "", false, errors.Wrap(err, "product id must be a string or number")
	}

	return n.String(), true, nil
}

func decodeString(v json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}

	return s, true
}

func decodeNumber(v json.RawMessage) (float64, bool) {
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return f, true
	}
	if s, ok := decodeString(v); ok {
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			return parsed, true
		}
	}

	return 0, false
}
