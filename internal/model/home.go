package model

const (
	HomeLanded = "LANDED"
	HomeCondo  = "CONDO"
)

var HomeTypeChoices = Choices{
	{Value: HomeLanded, Label: "Landed"},
	{Value: HomeCondo, Label: "Condominium"},
}

type Home struct {
	ID          int64  `json:"id"`
	URL         string `json:"url"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Type        string `json:"type"`
	TypeDisplay string `json:"type_display"`
}

type HomeInput struct {
	Name    string
	Address string
	Type    string
}

var HomeSchema = Schema{
	Resource: ResourceHome,
	Fields: []Field{
		{Name: "name", Kind: FieldString, Required: true, MaxLength: nameMaxLength},
		{Name: "address", Kind: FieldString, Required: true, MaxLength: nameMaxLength},
		{Name: "type", Kind: FieldChoice, Choices: HomeTypeChoices, Default: HomeLanded},
	},
}

// Resolve fills the derived attributes after a row is loaded.
func (h *Home) Resolve() {
	h.URL = ResourcePath(ResourceHome, h.ID)
	h.TypeDisplay = HomeTypeChoices.Label(h.Type)
}

func (h *Home) Input() HomeInput {
	return HomeInput{Name: h.Name, Address: h.Address, Type: h.Type}
}

func (in *HomeInput) Apply(data CleanedData) {
	if v, ok := data.String("name"); ok {
		in.Name = v
	}
	if v, ok := data.String("address"); ok {
		in.Address = v
	}
	if v, ok := data.String("type"); ok {
		in.Type = v
	}
}
