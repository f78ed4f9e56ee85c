package dashboard

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"macroDash/internal/domain"
	"macroDash/internal/infrastructure/xlsx"
	"macroDash/internal/ports"
)

// Controller — маршруты дашборда: разделы, выгрузки, наборы данных, история загрузок.
type Controller struct {
	uc      ports.IDashboardUseCase
	history ports.IHistoryUseCase
	log     *slog.Logger
	now     func() time.Time
}

// New создаёт контроллер дашборда.
func New(uc ports.IDashboardUseCase, history ports.IHistoryUseCase, log *slog.Logger) *Controller {
	return &Controller{uc: uc, history: history, log: log, now: time.Now}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	api.GET("/sections", c.sections)
	api.GET("/sections/:section", c.section)
	api.GET("/sections/:section/export", c.export)

	api.GET("/datasets", c.datasets)
	api.POST("/datasets/:name/refresh", c.refresh)
	api.DELETE("/datasets/:name/cache", c.invalidate)

	api.GET("/refreshes", c.refreshes)
}

// @Summary Список разделов
// @Tags dashboard
// @Produce json
// @Success 200 {object} SectionsResponse
// @Router /api/v1/sections [get]
func (c *Controller) sections(ctx *gin.Context) {
	items := make([]SectionItem, 0, len(domain.AllSections))
	for _, s := range domain.AllSections {
		items = append(items, SectionItem{ID: s, Title: s.Title(), Datasets: s.Datasets()})
	}
	ctx.JSON(http.StatusOK, SectionsResponse{Items: items})
}

// @Summary Данные раздела
// @Description Загружает наборы раздела через кэш и возвращает агрегаты с предупреждениями.
// @Tags dashboard
// @Produce json
// @Param section path string true "overview, geographic, students, sales, opportunities"
// @Param uf query string false "UF"
// @Param region query string false "Região"
// @Param top query int false "Tamanho dos rankings"
// @Param min_students query int false "Mínimo de alunos por município"
// @Param min_population query int false "População mínima (oportunidades)"
// @Success 200 {object} domain.SectionResult
// @Failure 400 {object} ErrorResponse "Невалидные фильтры"
// @Failure 404 {object} ErrorResponse "Неизвестный раздел"
// @Failure 503 {object} ErrorResponse "Набор данных недоступен"
// @Router /api/v1/sections/{section} [get]
func (c *Controller) section(ctx *gin.Context) {
	req, ok := c.viewRequest(ctx)
	if !ok {
		return
	}
	res, err := c.uc.Section(ctx.Request.Context(), req)
	if err != nil {
		c.writeError(ctx, "section", err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// @Summary Выгрузка раздела в Excel
// @Tags dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param section path string true "Раздел"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/sections/{section}/export [get]
func (c *Controller) export(ctx *gin.Context) {
	req, ok := c.viewRequest(ctx)
	if !ok {
		return
	}
	rep, err := c.uc.Report(ctx.Request.Context(), req)
	if err != nil {
		c.writeError(ctx, "export", err)
		return
	}
	body, err := xlsx.Render(*rep)
	if err != nil {
		c.writeError(ctx, "export render", err)
		return
	}
	filename := fmt.Sprintf("macrodash-%s-%s.xlsx", req.Section, c.now().Format("20060102"))
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, xlsx.ContentType, body)
}

// @Summary Состояние наборов данных
// @Tags datasets
// @Produce json
// @Success 200 {object} DatasetsResponse
// @Router /api/v1/datasets [get]
func (c *Controller) datasets(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, DatasetsResponse{Items: c.uc.Datasets(ctx.Request.Context())})
}

// @Summary Принудительно перезагрузить набор
// @Description Сбрасывает запись кэша и загружает набор из таблицы. Если источник недоступен, а прошлый снимок есть, отдаётся он.
// @Tags datasets
// @Produce json
// @Param name path string true "poles, municipalities, students, sales"
// @Success 200 {object} RefreshResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} RefreshResponse "Источник недоступен и снимка нет"
// @Router /api/v1/datasets/{name}/refresh [post]
func (c *Controller) refresh(ctx *gin.Context) {
	name := domain.DatasetName(ctx.Param("name"))
	st, err := c.uc.Refresh(ctx.Request.Context(), name)
	if err != nil && st == nil {
		c.writeError(ctx, "refresh", err)
		return
	}
	if err != nil {
		c.log.Warn("refresh failed", "dataset", name, "error", err)
		ctx.JSON(http.StatusServiceUnavailable, RefreshResponse{Dataset: *st, Message: st.Message})
		return
	}
	ctx.JSON(http.StatusOK, RefreshResponse{Dataset: *st, Message: st.Message})
}

// @Summary Сбросить кэш набора
// @Tags datasets
// @Param name path string true "Набор"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/datasets/{name}/cache [delete]
func (c *Controller) invalidate(ctx *gin.Context) {
	if err := c.uc.Invalidate(domain.DatasetName(ctx.Param("name"))); err != nil {
		c.writeError(ctx, "invalidate", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// @Summary История загрузок
// @Tags datasets
// @Produce json
// @Param limit query int false "Количество записей (по умолчанию 50, максимум 500)"
// @Success 200 {object} HistoryResponse
// @Failure 404 {object} ErrorResponse "История отключена"
// @Router /api/v1/refreshes [get]
func (c *Controller) refreshes(ctx *gin.Context) {
	if c.history == nil {
		c.writeError(ctx, "history", domain.ErrHistoryDisabled)
		return
	}
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_limit", Message: "Parâmetro limit inválido."})
			return
		}
		limit = n
	}
	list, err := c.history.History(ctx.Request.Context(), limit)
	if err != nil {
		c.writeError(ctx, "history", err)
		return
	}
	items := make([]RefreshItem, len(list))
	for i, ev := range list {
		items[i] = RefreshItem{
			ID:          ev.ID,
			Dataset:     ev.Dataset,
			Status:      string(ev.Status),
			Rows:        ev.Rows,
			Quarantined: ev.Quarantined,
			DurationMs:  ev.Duration.Milliseconds(),
			Error:       ev.Error,
			At:          ev.At,
		}
	}
	ctx.JSON(http.StatusOK, HistoryResponse{Items: items})
}

// viewRequest разбирает раздел и фильтры. При ошибке ответ уже записан.
func (c *Controller) viewRequest(ctx *gin.Context) (domain.ViewRequest, bool) {
	var q FiltersQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		c.log.Warn("section filters bind failed", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_filters", Message: "Filtros inválidos: " + err.Error()})
		return domain.ViewRequest{}, false
	}
	return domain.ViewRequest{
		Section: domain.Section(ctx.Param("section")),
		Filters: domain.Filters{
			UF:            q.UF,
			Region:        q.Region,
			TopN:          q.Top,
			MinStudents:   q.MinStudents,
			MinPopulation: q.MinPopulation,
		},
	}, true
}
