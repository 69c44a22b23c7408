package stub

import (
	"encoding/json"
	"net/http"

	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/failure"
	"campus/shared/logger"
)

// withData writes a success envelope. The envelope shape, including the
// "isSucess" field, matches the production backend byte for byte.
func withData(writer http.ResponseWriter, status int, message string, data any) {
	var raw json.RawMessage

	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			logger.ErrorWithStack(err)
			withError(writer, failure.InternalError(err))

			return
		}

		raw = encoded
	}

	respond(writer, status, gDto.Envelope{
		IsSucess: true,
		Code:     constant.CodeSuccess,
		Message:  message,
		Data:     raw,
	})
}

// withError maps a failure to the backend's envelope codes. Conflicts
// carry the duplicate-reservation code the client branches on.
func withError(writer http.ResponseWriter, err error) {
	status := failure.GetCode(err)

	code := constant.CodeInternalError

	switch status {
	case http.StatusConflict:
		code = constant.CodeDuplicateActiveReservation
	case http.StatusUnauthorized:
		code = constant.CodeInvalidCredentials
	case http.StatusNotFound:
		code = constant.CodeNotFound
	case http.StatusBadRequest:
		code = constant.CodeBadRequest
	}

	respond(writer, status, gDto.Envelope{
		IsSucess: false,
		Code:     code,
		Message:  err.Error(),
	})
}

func respond(writer http.ResponseWriter, status int, envelope gDto.Envelope) {
	payload, err := json.Marshal(envelope)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(status)

	if _, err = writer.Write(payload); err != nil {
		logger.ErrorWithStack(err)
	}
}
