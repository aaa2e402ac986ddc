package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/waktusolat/solat-api/internal/gazetteer"
	"github.com/waktusolat/solat-api/internal/http/api"
	"github.com/waktusolat/solat-api/internal/http/api/zones/packets"
	"github.com/waktusolat/solat-api/internal/metrics"
	"github.com/waktusolat/solat-api/internal/model"
)

type ZoneController struct {
	zones   *gazetteer.Gazetteer
	locator api.Locator
	metrics *metrics.Metrics
}

func NewZoneController(zones *gazetteer.Gazetteer, locator api.Locator, m *metrics.Metrics) *ZoneController {
	return &ZoneController{zones: zones, locator: locator, metrics: m}
}

func ZoneModule(zones *gazetteer.Gazetteer, locator api.Locator, m *metrics.Metrics) api.Module {
	ctl := NewZoneController(zones, locator, m)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/zones", ctl.listZones)
		// gin needs one wildcard name per segment, so :key is the state prefix here
		// and the latitude below.
		c.PUBLIC_GET("/zones/:key", ctl.listZonesByState)
		c.PUBLIC_GET("/zones/:key/:lon", ctl.locateZone)
	})
}

// GET /zones
func (z *ZoneController) listZones(ctx *gin.Context) (any, *api.Error) {
	return toZoneResponses(z.zones.All()), nil
}

// GET /zones/:state
func (z *ZoneController) listZonesByState(ctx *gin.Context) (any, *api.Error) {
	return toZoneResponses(z.zones.FilterByState(ctx.Param("key"))), nil
}

// GET /zones/:lat/:lon
func (z *ZoneController) locateZone(ctx *gin.Context) (any, *api.Error) {
	district, apiErr := api.Locate(z.locator, z.metrics, ctx.Param("key"), ctx.Param("lon"))
	if apiErr != nil {
		return nil, apiErr
	}
	return packets.LocationResponse{
		Zone:     district.Zone,
		State:    district.State,
		District: district.District,
	}, nil
}

func toZoneResponses(zones []model.Zone) []packets.ZoneResponse {
	response := make([]packets.ZoneResponse, 0, len(zones))
	for _, zone := range zones {
		response = append(response, packets.ZoneResponse{
			JakimCode: zone.Code,
			Negeri:    zone.Negeri,
			Daerah:    zone.Daerah(),
		})
	}
	return response
}
