package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	md "github.com/moducation/library-api/pkg/middleware"
	"github.com/moducation/library-api/pkg/validate"
)

type Handler struct {
	bookSvc        BookService
	userSvc        UserService
	circulationSvc CirculationService
	log            *zap.Logger
}

func New(bookSvc BookService, userSvc UserService, circulationSvc CirculationService, log *zap.Logger) *Handler {
	return &Handler{
		bookSvc:        bookSvc,
		userSvc:        userSvc,
		circulationSvc: circulationSvc,
		log:            log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	books := api.Group("/books")
	books.GET("/get-books", h.GetBooks)
	books.GET("/get-book/:id", h.GetBook)
	books.GET("/search", h.SearchBooks)
	books.POST("/add", h.AddBook)
	books.PATCH("/update/:id", h.UpdateBook)
	books.DELETE("/delete/:id", h.DeleteBook)
	books.POST("/borrow", h.BorrowBook, md.JwtAuthentication)
	books.POST("/return", h.ReturnBook, md.JwtAuthentication)

	users := api.Group("/users")
	users.POST("/register", h.Register)
	users.POST("/login", h.Login)
	users.GET("/:id/profile", h.Profile)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
