package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"macroDash/internal/api/http/middlewares"
)

// ServerConfig — настройки HTTP-сервера. Переменные: DASHBOARD_SERVER_HOST, DASHBOARD_SERVER_PORT, ...
type ServerConfig struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port string `envconfig:"PORT" default:"8080"`
	// WriteTimeout покрывает холодную загрузку наборов и выгрузку XLSX.
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"60s"`
	AllowOrigins []string      `envconfig:"ALLOW_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173"`
}

// Controller — контракт: контроллер регистрирует свои маршруты на роутере.
type Controller interface {
	RegisterRoutes(r *gin.Engine)
}

// Server — API-сервер: конфиг и список контроллеров.
type Server struct {
	cfg         ServerConfig
	controllers []Controller
	srv         *http.Server
	log         *slog.Logger
}

// NewServer создаёт сервер с конфигом; log получает журнал запросов.
func NewServer(cfg ServerConfig, log *slog.Logger) *Server {
	return &Server{cfg: cfg, controllers: nil, log: log}
}

// AddController добавляет один или несколько контроллеров.
func (s *Server) AddController(c ...Controller) {
	s.controllers = append(s.controllers, c...)
}

// Router собирает gin-роутер с мидлварями, /metrics и маршрутами контроллеров.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	// CORS-мидлварь: зачем и как — см. комментарий в конце файла.
	corsCfg := cors.Config{
		AllowOrigins:     s.cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middlewares.RequestIDHeader},
		AllowCredentials: false,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))
	r.Use(middlewares.RequestLogger(s.log), middlewares.PrometheusMetrics)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	for _, c := range s.controllers {
		c.RegisterRoutes(r)
	}
	return r
}

// Start поднимает роутер, запускает сервер и блокируется до отмены ctx (SIGINT/SIGTERM), затем делает graceful shutdown.
// Ошибка прослушивания порта возвращается сразу.
func (s *Server) Start(ctx context.Context) error {
	readTimeout, writeTimeout := s.cfg.ReadTimeout, s.cfg.WriteTimeout
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	if writeTimeout <= 0 {
		writeTimeout = 60 * time.Second
	}
	s.srv = &http.Server{
		Addr:         s.cfg.Host + ":" + s.cfg.Port,
		Handler:      s.Router(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// --- CORS: полная логика ---
//
// Origin = схема + хост + порт. Страница с http://localhost:3000 и запрос на http://localhost:8080
// — разные origin (порты разные). Такой запрос браузер считает cross-origin и ограничивает.
//
// 1) Preflight (OPTIONS). Перед «непростым» запросом (POST, нестандартные заголовки вроде
//    Content-Type: application/json) браузер сам отправляет OPTIONS на тот же URL и смотрит
//    ответ: есть ли заголовки Access-Control-Allow-Origin, Allow-Methods, Allow-Headers.
//    Если их нет или origin/метод/заголовок не разрешён — основной запрос (POST) не шлёт,
//    в консоли ошибка CORS.
//
// 2) Без мидлвари: на OPTIONS у нас нет маршрута → 404 → браузер считает, что cross-origin
//    запрещён, POST не отправляет.
//
// 3) С мидлварью: запрос перехватывается до роутера. На OPTIONS мидлварь сразу отвечает
//    204 No Content и вешает Access-Control-Allow-Origin (наш origin из списка),
//    Allow-Methods (GET, POST, DELETE, OPTIONS), Allow-Headers (Origin, Content-Type, Accept).
//    На остальные запросы (GET, POST) мидлварь добавляет к ответу Allow-Origin и при
//    необходимости другие CORS-заголовки. Браузер видит разрешение и пропускает ответ.
//
// 4) AllowOrigins — с каких страниц разрешено слать запросы (фронт на 3000 или Vite 5173).
//    Список origin задаётся DASHBOARD_SERVER_ALLOW_ORIGINS.
//    AllowMethods — какие HTTP-методы разрешены. AllowHeaders — какие заголовки запроса
//    разрешены (без этого Content-Type: application/json мог бы быть заблокирован).
