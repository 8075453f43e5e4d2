package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moducation/library-api/library/internal/errs"
	"github.com/moducation/library-api/library/internal/handler"
	"github.com/moducation/library-api/library/internal/model"
	"github.com/moducation/library-api/pkg/auth"
	md "github.com/moducation/library-api/pkg/middleware"
	"github.com/moducation/library-api/pkg/validate"

	service_mocks "github.com/moducation/library-api/library/internal/handler/mocks"
)

func bearerToken(t *testing.T, userID int64) string {
	t.Helper()
	token, _, err := auth.NewToken(userID, time.Now())
	require.NoError(t, err)
	return "Bearer " + token
}

func TestHandler_BorrowBook(t *testing.T) {
	t.Parallel()
	type input struct {
		body   string
		token  string
		userID int64
	}
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockCirculationService, inp input)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		input        input
		response     response
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockCirculationService, inp input) {
				r.EXPECT().
					Borrow(gomock.Any(), int64(7), inp.userID).
					Return(model.Withdrawal{
						ID:                 1,
						ActivityID:         2,
						UserID:             inp.userID,
						ExpectedReturnDate: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
					}, nil)
			},
			input: input{
				body:   `{"id":7}`,
				userID: 3,
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":1,"activityId":2,"userId":3,"expectedReturnDate":"2026-09-07T00:00:00Z"}`,
			},
		},
		{
			name:         "err. no session",
			mockBehavior: func(r *service_mocks.MockCirculationService, inp input) {},
			input: input{
				body:   `{"id":7}`,
				token:  "none",
				userID: 3,
			},
			response: response{
				expectedCode: http.StatusUnauthorized,
				expectedBody: `{"message":"please login"}`,
			},
		},
		{
			name: "err. user gone",
			mockBehavior: func(r *service_mocks.MockCirculationService, inp input) {
				r.EXPECT().
					Borrow(gomock.Any(), int64(7), inp.userID).
					Return(model.Withdrawal{}, errs.ErrUserNotFound)
			},
			input: input{
				body:   `{"id":7}`,
				userID: 3,
			},
			response: response{
				expectedCode: http.StatusUnauthorized,
				expectedBody: `{"message":"user not found"}`,
			},
		},
		{
			name: "err. not available",
			mockBehavior: func(r *service_mocks.MockCirculationService, inp input) {
				r.EXPECT().
					Borrow(gomock.Any(), int64(7), inp.userID).
					Return(model.Withdrawal{}, errs.ErrNotAvailable)
			},
			input: input{
				body:   `{"id":7}`,
				userID: 3,
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"book is not available"}`,
			},
		},
		{
			name: "err. internal",
			mockBehavior: func(r *service_mocks.MockCirculationService, inp input) {
				r.EXPECT().
					Borrow(gomock.Any(), int64(7), inp.userID).
					Return(model.Withdrawal{}, errors.New("db internal"))
			},
			input: input{
				body:   `{"id":7}`,
				userID: 3,
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			circulationSvc := service_mocks.NewMockCirculationService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(nil, nil, circulationSvc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/books/borrow", h.BorrowBook, md.JwtAuthentication)

			r := httptest.NewRequest(http.MethodPost, "/books/borrow", strings.NewReader(tt.input.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			if tt.input.token != "none" {
				r.Header.Set(md.AuthorizationHeader, bearerToken(t, tt.input.userID))
			}
			w := httptest.NewRecorder()

			tt.mockBehavior(circulationSvc, tt.input)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_ReturnBook(t *testing.T) {
	t.Parallel()
	type input struct {
		body   string
		token  string
		userID int64
	}
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockCirculationService, inp input)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		input        input
		response     response
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockCirculationService, inp input) {
				r.EXPECT().
					Return(gomock.Any(), int64(7), inp.userID).
					Return(model.Return{
						ID:           1,
						ActivityID:   5,
						WithdrawalID: 2,
						BookID:       7,
						UserID:       inp.userID,
						ReturnDate:   time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
						WasOverdue:   true,
					}, nil)
			},
			input: input{
				body:   `{"id":7}`,
				userID: 3,
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":1,"activityId":5,"withdrawalId":2,"bookId":7,"userId":3,"returnDate":"2026-09-03T00:00:00Z","wasOverdue":true}`,
			},
		},
		{
			name:         "err. no session",
			mockBehavior: func(r *service_mocks.MockCirculationService, inp input) {},
			input: input{
				body:   `{"id":7}`,
				token:  "none",
				userID: 3,
			},
			response: response{
				expectedCode: http.StatusUnauthorized,
				expectedBody: `{"message":"please login"}`,
			},
		},
		{
			name: "err. no prior withdrawal",
			mockBehavior: func(r *service_mocks.MockCirculationService, inp input) {
				r.EXPECT().
					Return(gomock.Any(), int64(7), inp.userID).
					Return(model.Return{}, errs.ErrNotFound)
			},
			input: input{
				body:   `{"id":7}`,
				userID: 3,
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
		},
		{
			name: "err. internal",
			mockBehavior: func(r *service_mocks.MockCirculationService, inp input) {
				r.EXPECT().
					Return(gomock.Any(), int64(7), inp.userID).
					Return(model.Return{}, errors.New("db internal"))
			},
			input: input{
				body:   `{"id":7}`,
				userID: 3,
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			circulationSvc := service_mocks.NewMockCirculationService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(nil, nil, circulationSvc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/books/return", h.ReturnBook, md.JwtAuthentication)

			r := httptest.NewRequest(http.MethodPost, "/books/return", strings.NewReader(tt.input.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			if tt.input.token != "none" {
				r.Header.Set(md.AuthorizationHeader, bearerToken(t, tt.input.userID))
			}
			w := httptest.NewRecorder()

			tt.mockBehavior(circulationSvc, tt.input)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}
