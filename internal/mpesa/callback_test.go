package mpesa_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CharlesOsang017/keja-hook/internal/mpesa"
)

const successCallback = `{
  "Body": {
    "stkCallback": {
      "MerchantRequestID": "29115-34620561-1",
      "CheckoutRequestID": "ws_CO_191220191020363925",
      "ResultCode": 0,
      "ResultDesc": "The service request is processed successfully.",
      "CallbackMetadata": {
        "Item": [
          {"Name": "Amount", "Value": 15000.00},
          {"Name": "MpesaReceiptNumber", "Value": "NLJ7RT61SV"},
          {"Name": "TransactionDate", "Value": 20191219102115},
          {"Name": "PhoneNumber", "Value": 254712345678}
        ]
      }
    }
  }
}`

const failureCallback = `{
  "Body": {
    "stkCallback": {
      "MerchantRequestID": "29115-34620561-1",
      "CheckoutRequestID": "ws_CO_191220191020363925",
      "ResultCode": 1032,
      "ResultDesc": "Request cancelled by user"
    }
  }
}`

func TestCallbackEnvelope_Result(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var envelope mpesa.CallbackEnvelope
		require.NoError(t, json.Unmarshal([]byte(successCallback), &envelope))

		res, err := envelope.Result()
		require.NoError(t, err)

		assert.Equal(t, "ws_CO_191220191020363925", res.TransactionID)
		assert.Equal(t, 0, res.ResultCode)
		assert.Equal(t, "NLJ7RT61SV", res.Receipt)
		assert.Equal(t, int64(15000), res.Amount)
		assert.Equal(t, "254712345678", res.Phone)
	})

	t.Run("FailureHasNoMetadata", func(t *testing.T) {
		var envelope mpesa.CallbackEnvelope
		require.NoError(t, json.Unmarshal([]byte(failureCallback), &envelope))

		res, err := envelope.Result()
		require.NoError(t, err)

		assert.Equal(t, 1032, res.ResultCode)
		assert.Equal(t, "Request cancelled by user", res.ResultDesc)
		assert.Empty(t, res.Receipt)
	})

	t.Run("MissingCheckoutRequestID", func(t *testing.T) {
		var envelope mpesa.CallbackEnvelope
		require.NoError(t, json.Unmarshal([]byte(`{"Body":{"stkCallback":{}}}`), &envelope))

		_, err := envelope.Result()
		require.Error(t, err)
	})

	t.Run("SuccessWithoutReceipt", func(t *testing.T) {
		var envelope mpesa.CallbackEnvelope
		require.NoError(t, json.Unmarshal([]byte(`{
			"Body": {"stkCallback": {"CheckoutRequestID": "ws_CO_1", "ResultCode": 0}}
		}`), &envelope))

		_, err := envelope.Result()
		require.Error(t, err)
	})
}
