package endpoints

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/waktusolat/solat-api/internal/http/api"
	solat "github.com/waktusolat/solat-api/internal/http/api/solat/endpoints"
	"github.com/waktusolat/solat-api/internal/jadual"
	"github.com/waktusolat/solat-api/internal/metrics"
	"github.com/waktusolat/solat-api/internal/model"
)

// DocumentAssembler builds the timetable content for a zone month.
type DocumentAssembler interface {
	Assemble(ctx context.Context, zone string, requested *model.RequestedPeriod) (jadual.Document, error)
}

type JadualController struct {
	assembler DocumentAssembler
	renderer  jadual.Renderer
	clock     clockwork.Clock
	metrics   *metrics.Metrics
}

func NewJadualController(assembler DocumentAssembler, renderer jadual.Renderer, clock clockwork.Clock, m *metrics.Metrics) *JadualController {
	return &JadualController{assembler: assembler, renderer: renderer, clock: clock, metrics: m}
}

func JadualModule(assembler DocumentAssembler, renderer jadual.Renderer, clock clockwork.Clock, m *metrics.Metrics) api.Module {
	ctl := NewJadualController(assembler, renderer, clock, m)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/jadual_solat/:zone", ctl.getTimetable)
	})
}

// GET /jadual_solat/:zone
func (j *JadualController) getTimetable(ctx *gin.Context) (any, *api.Error) {
	period, err := api.ParsePeriod(ctx, j.clock.Now())
	if err != nil {
		return nil, api.MessageError(http.StatusBadRequest, err.Error())
	}

	doc, err := j.assembler.Assemble(ctx.Request.Context(), ctx.Param("zone"), period)
	if err != nil {
		return nil, solat.ScheduleError(err)
	}

	var buf bytes.Buffer
	if err := j.renderer.Render(&buf, doc); err != nil {
		log.Error().Err(err).Str("zone", doc.ZoneCode).Msg("pdf render failed")
		return nil, api.ServerError()
	}
	if j.metrics != nil {
		j.metrics.PDFsRendered.Inc()
	}
	return pdfResponse{filename: doc.Filename(), body: buf.Bytes()}, nil
}

type pdfResponse struct {
	filename string
	body     []byte
}

func (p pdfResponse) Respond(ctx *gin.Context) {
	ctx.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s", p.filename))
	ctx.Data(http.StatusOK, "application/pdf", p.body)
}
