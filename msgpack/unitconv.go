package unitconvmsgpack

import (
	"unitconv"
)

type Unit struct {
	Name   string  `msgpack:"name,omitempty"`
	Factor float64 `msgpack:"factor,omitempty"`
}

type Group struct {
	Category string `msgpack:"category,omitempty"`
	Label    string `msgpack:"label,omitempty"`
	Units    []Unit `msgpack:"units,omitempty"`
}

type Catalog struct {
	Groups []Group `msgpack:"groups,omitempty"`
}

// ConvertRequest mirrors unitconv.Request. A nil Amount is an unset amount.
type ConvertRequest struct {
	Amount *float64 `msgpack:"amount"`
	From   string   `msgpack:"from,omitempty"`
	To     string   `msgpack:"to,omitempty"`
}

type ConvertResponse struct {
	Value    float64 `msgpack:"value"`
	Category string  `msgpack:"category,omitempty"`
	From     Unit    `msgpack:"from"`
	To       Unit    `msgpack:"to"`
}

type Error struct {
	Code    string `msgpack:"code,omitempty"`
	Message string `msgpack:"message,omitempty"`
}

func NewUnit(u unitconv.Unit) Unit {
	return Unit{Name: u.Name, Factor: u.Factor}
}

func NewCatalog(c *unitconv.Catalog) Catalog {
	var out Catalog
	for _, g := range c.Groups() {
		group := Group{Category: string(g.Category), Label: g.Label}
		for _, u := range g.Units {
			group.Units = append(group.Units, NewUnit(u))
		}
		out.Groups = append(out.Groups, group)
	}
	return out
}

// ToDefs turns a wire catalog back into catalog source data.
func (c *Catalog) ToDefs() []unitconv.CategoryDef {
	defs := make([]unitconv.CategoryDef, 0, len(c.Groups))
	for _, g := range c.Groups {
		def := unitconv.CategoryDef{Category: unitconv.Category(g.Category)}
		for _, u := range g.Units {
			def.Units = append(def.Units, unitconv.UnitDef{Name: u.Name, Factor: u.Factor})
		}
		defs = append(defs, def)
	}
	return defs
}

func NewConvertRequest(req unitconv.Request) ConvertRequest {
	return ConvertRequest{Amount: req.Value, From: req.From, To: req.To}
}

func ToRequest(req *ConvertRequest) unitconv.Request {
	return unitconv.Request{Value: req.Amount, From: req.From, To: req.To}
}

func NewConvertResponse(res unitconv.Result) ConvertResponse {
	return ConvertResponse{
		Value:    res.Value,
		Category: string(res.Category),
		From:     NewUnit(res.From),
		To:       NewUnit(res.To),
	}
}

func ToResult(resp *ConvertResponse) unitconv.Result {
	cat := unitconv.Category(resp.Category)
	return unitconv.Result{
		Value:    resp.Value,
		Category: cat,
		From:     unitconv.Unit{Name: resp.From.Name, Category: cat, Factor: resp.From.Factor},
		To:       unitconv.Unit{Name: resp.To.Name, Category: cat, Factor: resp.To.Factor},
	}
}

func NewError(err error) Error {
	return Error{Code: unitconv.ErrorCode(err), Message: err.Error()}
}
