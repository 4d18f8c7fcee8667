package service

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/catapp/backend/internal/model"
	"github.com/stretchr/testify/require"
)

func rawBody(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	raw, err := DecodeBody([]byte(body))
	require.NoError(t, err)
	return raw
}

func TestDecodeBody(t *testing.T) {
	raw, err := DecodeBody(nil)
	require.NoError(t, err)
	require.Empty(t, raw)

	_, err = DecodeBody([]byte(`[1, 2]`))
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, model.CodeInvalid, verr.Code(model.NonFieldErrors))

	_, err = DecodeBody([]byte(`null`))
	require.ErrorAs(t, err, &verr)
}

func TestValidateFieldCodes(t *testing.T) {
	cases := []struct {
		name   string
		schema model.Schema
		body   string
		mode   writeMode
		want   map[string]string
	}{
		{
			name:   "home missing fields",
			schema: model.HomeSchema,
			body:   `{}`,
			want:   map[string]string{"name": model.CodeRequired, "address": model.CodeRequired},
		},
		{
			name:   "home null fields",
			schema: model.HomeSchema,
			body:   `{"name": null, "address": null, "type": null}`,
			want:   map[string]string{"name": model.CodeNull, "address": model.CodeNull, "type": model.CodeNull},
		},
		{
			name:   "home blank fields",
			schema: model.HomeSchema,
			body:   `{"name": "", "address": "  ", "type": ""}`,
			want:   map[string]string{"name": model.CodeBlank, "address": model.CodeBlank, "type": model.CodeBlank},
		},
		{
			name:   "home invalid type",
			schema: model.HomeSchema,
			body:   `{"name": "My Home", "address": "My Address", "type": "BLABLA"}`,
			want:   map[string]string{"type": model.CodeInvalidChoice},
		},
		{
			name:   "cat blank gender",
			schema: model.CatSchema,
			body:   `{"name": "Kitty", "gender": "", "breed": 1, "owner": 1}`,
			want:   map[string]string{"gender": model.CodeBlank},
		},
		{
			name:   "human bad date and ref type",
			schema: model.HumanSchema,
			body:   `{"name": "John", "gender": "M", "date_of_birth": "24/01/1992", "home": "abc"}`,
			want:   map[string]string{"date_of_birth": model.CodeInvalid, "home": model.CodeInvalid},
		},
		{
			name:   "breed name too long",
			schema: model.BreedSchema,
			body:   `{"name": "` + strings.Repeat("x", 256) + `", "origin": "Japan"}`,
			want:   map[string]string{"name": model.CodeMaxLength},
		},
		{
			name:   "partial skips missing fields",
			schema: model.CatSchema,
			body:   `{"gender": "X"}`,
			mode:   modePartial,
			want:   map[string]string{"gender": model.CodeInvalidChoice},
		},
		{
			name:   "update still requires fields",
			schema: model.BreedSchema,
			body:   `{"name": "Siamese"}`,
			mode:   modeUpdate,
			want:   map[string]string{"origin": model.CodeRequired},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validate(tc.schema, rawBody(t, tc.body), tc.mode)
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Fields, len(tc.want))
			for field, code := range tc.want {
				require.Equal(t, code, verr.Code(field), field)
			}
		})
	}
}

func TestValidateMessages(t *testing.T) {
	_, err := validate(model.HomeSchema, rawBody(t, `{"name": "", "type": "BLABLA"}`), modeCreate)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)

	require.Equal(t, "This field may not be blank.", verr.Fields["name"][0].Message)
	require.Equal(t, "This field is required.", verr.Fields["address"][0].Message)
	require.Equal(t, `"BLABLA" is not a valid choice.`, verr.Fields["type"][0].Message)
}

func TestValidateCleanedData(t *testing.T) {
	data, err := validate(model.HomeSchema, rawBody(t, `{"name": " My Home ", "address": "My Address"}`), modeCreate)
	require.NoError(t, err)
	name, _ := data.String("name")
	require.Equal(t, "My Home", name)
	homeType, _ := data.String("type")
	require.Equal(t, model.HomeLanded, homeType)

	data, err = validate(model.HomeSchema, rawBody(t, `{"name": "x", "address": "y"}`), modeUpdate)
	require.NoError(t, err)
	_, ok := data.String("type")
	require.False(t, ok, "defaults apply on create only")

	data, err = validate(model.CatSchema, rawBody(t, `{"name": "Kitty", "gender": "F", "date_of_birth": null, "breed": "3", "owner": 4}`), modeCreate)
	require.NoError(t, err)
	dob, present := data.Date("date_of_birth")
	require.True(t, present)
	require.Nil(t, dob)
	breed, _ := data.Int64("breed")
	require.Equal(t, int64(3), breed)
	owner, _ := data.Int64("owner")
	require.Equal(t, int64(4), owner)
	description, _ := data.String("description")
	require.Equal(t, "", description)
}

func TestValidateLengthLimits(t *testing.T) {
	body := func(username, password string) string {
		out, err := json.Marshal(map[string]string{"username": username, "password": password})
		require.NoError(t, err)
		return string(out)
	}

	_, err := validate(model.SignupSchema, rawBody(t, body("al", "short")), modeCreate)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, model.CodeMinLength, verr.Code("username"))
	require.Equal(t, model.CodeMinLength, verr.Code("password"))
	require.Equal(t, "Ensure this field has at least 8 characters.", verr.Fields["password"][0].Message)

	// 40 two-byte runes fit any character limit but not bcrypt's 72 bytes.
	_, err = validate(model.CredentialsSchema, rawBody(t, body("admin", strings.Repeat("é", 40))), modeCreate)
	require.ErrorAs(t, err, &verr)
	require.Equal(t, model.CodeMaxLength, verr.Code("password"))
	require.Equal(t, "Ensure this field has no more than 72 bytes.", verr.Fields["password"][0].Message)

	data, err := validate(model.SignupSchema, rawBody(t, body("bob", strings.Repeat("x", model.PasswordMaxBytes))), modeCreate)
	require.NoError(t, err)
	password, _ := data.String("password")
	require.Len(t, password, model.PasswordMaxBytes)
}
