package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappedCatalogErrorMatchesSentinel(t *testing.T) {
	cause := errors.New("mailgun: 502")
	err := fmt.Errorf("register: %w", ErrNotificationFailed.Wrap(cause))

	assert.ErrorIs(t, err, ErrNotificationFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, MsgNotificationFailed, MessageOf(err))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindInternal, KindOf(errors.New("raw")))
	assert.Equal(t, KindConflict, KindOf(ErrRestoreRequired))
}

func TestMessageOfHidesRawErrors(t *testing.T) {
	assert.Equal(t, MsgInternal, MessageOf(errors.New("dial tcp 10.0.0.3:5432")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, KindValidation.HTTPStatus())
	assert.Equal(t, http.StatusConflict, KindConflict.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, KindNotFound.HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized, KindAuth.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, KindInternal.HTTPStatus())
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, MsgWrongCode, ErrWrongCode.Error())
	assert.Equal(t, MsgInternal+": boom", Internal(errors.New("boom")).Error())
}
