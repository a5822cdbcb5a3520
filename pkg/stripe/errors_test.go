package stripe_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/fairpay-io/stripe-client/pkg/stripe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	t.Run("with message", func(t *testing.T) {
		t.Parallel()

		err := &stripe.APIError{Message: "card declined", HTTPStatus: 402}
		assert.Equal(t, "card declined (status 402)", err.Error())
	})

	t.Run("without message", func(t *testing.T) {
		t.Parallel()

		err := &stripe.APIError{HTTPStatus: 500}
		assert.Equal(t, "request failed with status 500", err.Error())
	})
}

func TestErrorEnvelope_Decoding(t *testing.T) {
	t.Parallel()

	var envelope stripe.ErrorEnvelope

	err := json.Unmarshal([]byte(`{
		"error": {
			"type": "invalid_request_error",
			"code": "resource_missing",
			"message": "No such charge: ch_123",
			"param": "id"
		}
	}`), &envelope)
	require.NoError(t, err)
	require.NotNil(t, envelope.Err)

	assert.Equal(t, stripe.ErrorTypeInvalidRequest, envelope.Err.Type)
	assert.Equal(t, "resource_missing", envelope.Err.Code)
	assert.Equal(t, "No such charge: ch_123", envelope.Err.Message)
	assert.Equal(t, "id", envelope.Err.Param)
	assert.Zero(t, envelope.Err.HTTPStatus)
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	apiErr := &stripe.APIError{Message: "nope", HTTPStatus: 404}
	transportErr := &stripe.TransportError{Err: assert.AnError}
	serializationErr := &stripe.SerializationError{Err: assert.AnError}
	deserializationErr := &stripe.DeserializationError{Err: assert.AnError}

	t.Run("api error", func(t *testing.T) {
		t.Parallel()

		found, ok := stripe.IsAPIError(fmt.Errorf("wrapped: %w", apiErr))
		require.True(t, ok)
		assert.Equal(t, 404, found.HTTPStatus)

		_, ok = stripe.IsAPIError(transportErr)
		assert.False(t, ok)
	})

	t.Run("transport error", func(t *testing.T) {
		t.Parallel()

		assert.True(t, stripe.IsTransportError(fmt.Errorf("wrapped: %w", transportErr)))
		assert.False(t, stripe.IsTransportError(apiErr))
	})

	t.Run("serialization error", func(t *testing.T) {
		t.Parallel()

		assert.True(t, stripe.IsSerializationError(serializationErr))
		assert.False(t, stripe.IsSerializationError(deserializationErr))
	})

	t.Run("deserialization error", func(t *testing.T) {
		t.Parallel()

		assert.True(t, stripe.IsDeserializationError(deserializationErr))
		assert.False(t, stripe.IsDeserializationError(serializationErr))
	})
}

func TestErrorUnwrapping(t *testing.T) {
	t.Parallel()

	wrappers := map[string]error{
		"transport":       &stripe.TransportError{Err: assert.AnError},
		"serialization":   &stripe.SerializationError{Err: assert.AnError},
		"deserialization": &stripe.DeserializationError{Err: assert.AnError},
	}

	for name, err := range wrappers {
		err := err

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			require.ErrorIs(t, err, assert.AnError)
		})
	}
}
