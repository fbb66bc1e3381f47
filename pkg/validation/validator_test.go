package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type signUp struct {
	Email           string `json:"email" binding:"required,email"`
	Nickname        string `json:"nickname" binding:"required,nickname"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required"`
	Code            int    `json:"code" binding:"gte=1000,lte=9999"`
}

func TestToDetails_FieldNamesFromJSONTags(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&signUp{Email: "nope", Nickname: "a b", Code: 12})

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be 1 to 30 characters without spaces or @", details["nickname"])
	assert.Equal(t, "is required", details["passwordConfirm"])
	assert.Equal(t, "must be greater than or equal to 1000", details["code"])
}

func TestToDetails_InvalidJSON(t *testing.T) {
	var v map[string]any
	err := json.Unmarshal([]byte(`{"email":`), &v)

	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}

func TestToDetails_Other(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("EOF")))
}
