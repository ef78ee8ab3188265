package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ixstats/engine/backend/models"
	"github.com/ixstats/engine/backend/utils"
	"github.com/ixstats/engine/ixstats"
	"github.com/ixstats/engine/ixstats/atomic"
	dbmodels "github.com/ixstats/engine/ixstats/database/models"
	"github.com/ixstats/engine/ixstats/market"
	"github.com/ixstats/engine/ixstats/policy"
)

// WebApp carries the engine services the HTTP layer dispatches into
type WebApp struct {
	App     *ixstats.App
	Version string
	Commit  string
}

// listingView is the wire shape of a listing: the stored row plus the derived
// countdown, so clients never compute time remaining themselves
type listingView struct {
	ListingCode   string                `json:"listingCode"`
	CardInstance  int64                 `json:"cardInstanceId"`
	SellerID      string                `json:"sellerId"`
	SellerName    string                `json:"sellerName"`
	StartingPrice int64                 `json:"startingPrice"`
	CurrentBid    int64                 `json:"currentBid"`
	BuyoutPrice   int64                 `json:"buyoutPrice,omitempty"`
	TopBidderID   string                `json:"topBidderId,omitempty"`
	BidCount      int                   `json:"bidCount"`
	Status        string                `json:"status"`
	IsExpress     bool                  `json:"isExpress"`
	IsFeatured    bool                  `json:"isFeatured"`
	EndTime       time.Time             `json:"endTime"`
	Countdown     market.CountdownState `json:"countdown"`
}

func newListingView(listing *dbmodels.AuctionListing, countdown market.CountdownState) listingView {
	return listingView{
		ListingCode:   listing.ListingCode,
		CardInstance:  listing.CardInstanceID,
		SellerID:      listing.SellerID,
		SellerName:    listing.SellerName,
		StartingPrice: listing.StartingPrice,
		CurrentBid:    listing.CurrentBid,
		BuyoutPrice:   listing.BuyoutPrice,
		TopBidderID:   listing.TopBidderID,
		BidCount:      listing.BidCount,
		Status:        string(listing.Status),
		IsExpress:     listing.IsExpress,
		IsFeatured:    listing.IsFeatured,
		EndTime:       listing.EndTime,
		Countdown:     countdown,
	}
}

// sendMarketError maps engine failures onto HTTP status codes. Validation
// failures are the caller's fault; state conflicts mean the listing moved
// between read and write.
func sendMarketError(c *fiber.Ctx, err error) error {
	var ve *market.ValidationError
	if errors.As(err, &ve) {
		return utils.SendUnprocessableEntity(c, ve.Message, map[string]string{ve.Field: ve.Message})
	}
	switch {
	case errors.Is(err, market.ErrListingEnded),
		errors.Is(err, market.ErrListingHasBids):
		return utils.SendConflict(c, err.Error(), nil)
	case errors.Is(err, market.ErrNotSeller):
		return utils.SendForbidden(c, err.Error())
	case errors.Is(err, market.ErrNoBuyoutPrice):
		return utils.SendBadRequest(c, err.Error(), nil)
	}

	slog.Error("Market operation failed",
		slog.String("type", "market"),
		slog.String("path", c.Path()),
		slog.Any("error", err))
	return utils.SendInternalServerError(c, "market operation failed")
}

// HealthCheck reports store connectivity
func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := models.NewHealthCheck(webApp.Version)

		if err := webApp.App.DB.Ping(c.Context()); err != nil {
			health.AddComponent("database", "unhealthy", err.Error(), nil)
		} else {
			health.AddComponent("database", "healthy", "", nil)
		}

		health.AddComponent("game_clock", "healthy", "", map[string]interface{}{
			"now": webApp.App.Clock.Now(),
		})

		status := fiber.StatusOK
		if health.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return utils.SendJSON(c, status, health)
	}
}

// MarketData answers the market browse query with filters from the query
// string
func MarketData(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var filters market.MarketFilters
		if err := c.QueryParser(&filters); err != nil {
			return utils.SendBadRequest(c, "invalid market filters", nil)
		}

		listings, total, err := webApp.App.Market.MarketData(c.Context(), filters)
		if err != nil {
			return sendMarketError(c, err)
		}

		views := make([]listingView, 0, len(listings))
		for _, listing := range listings {
			views = append(views, newListingView(listing, webApp.App.Market.Countdown(listing)))
		}

		if filters.PageSize <= 0 {
			filters.PageSize = 20
		}
		if filters.Page <= 0 {
			filters.Page = 1
		}
		pagination := models.NewPaginationInfo(filters.Page, filters.PageSize, int64(total))
		return utils.SendPaginated(c, views, pagination, "")
	}
}

// ListingDetail returns one listing by its short code, with bid history
func ListingDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		listing, err := webApp.App.Market.GetByListingCode(c.Context(), c.Params("code"))
		if err != nil {
			return utils.SendNotFound(c, "listing not found")
		}

		bids, err := webApp.App.AuctionRepository.GetListingBids(c.Context(), listing.ID)
		if err != nil {
			return sendMarketError(c, err)
		}

		return utils.SendSuccess(c, fiber.Map{
			"listing": newListingView(listing, webApp.App.Market.Countdown(listing)),
			"bids":    bids,
		}, "")
	}
}

// ListingCountdown serves the per-tick countdown poll. Cheap on purpose: one
// indexed read plus pure arithmetic
func ListingCountdown(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		listing, err := webApp.App.Market.GetByListingCode(c.Context(), c.Params("code"))
		if err != nil {
			return utils.SendNotFound(c, "listing not found")
		}
		return utils.SendSuccess(c, webApp.App.Market.Countdown(listing), "")
	}
}

// CreateListing opens a new auction
func CreateListing(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input market.CreateListingInput
		if err := c.BodyParser(&input); err != nil {
			return utils.SendBadRequest(c, "invalid listing payload", nil)
		}

		listing, err := webApp.App.Market.CreateListing(c.Context(), input)
		if err != nil {
			return sendMarketError(c, err)
		}

		return utils.SendCreated(c, newListingView(listing, webApp.App.Market.Countdown(listing)), "listing created")
	}
}

type bidRequest struct {
	BidderID   string `json:"bidderId"`
	BidderName string `json:"bidderName"`
	Amount     int64  `json:"amount"`
}

// PlaceBid submits a bid against a listing code
func PlaceBid(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req bidRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "invalid bid payload", nil)
		}

		listing, err := webApp.App.Market.GetByListingCode(c.Context(), c.Params("code"))
		if err != nil {
			return utils.SendNotFound(c, "listing not found")
		}

		updated, err := webApp.App.Market.PlaceBid(c.Context(), listing.ID, req.BidderID, req.BidderName, req.Amount)
		if err != nil {
			return sendMarketError(c, err)
		}

		return utils.SendSuccess(c, newListingView(updated, webApp.App.Market.Countdown(updated)), "bid placed")
	}
}

// BuyoutListing ends a listing immediately at its buyout price
func BuyoutListing(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req bidRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "invalid buyout payload", nil)
		}

		listing, err := webApp.App.Market.GetByListingCode(c.Context(), c.Params("code"))
		if err != nil {
			return utils.SendNotFound(c, "listing not found")
		}

		updated, err := webApp.App.Market.Buyout(c.Context(), listing.ID, req.BidderID, req.BidderName)
		if err != nil {
			return sendMarketError(c, err)
		}

		return utils.SendSuccess(c, newListingView(updated, webApp.App.Market.Countdown(updated)), "listing bought out")
	}
}

// CancelListing withdraws a bid-free listing, seller only
func CancelListing(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requesterID := c.Query("requester_id")
		if requesterID == "" {
			return utils.SendBadRequest(c, "requester_id is required", nil)
		}

		listing, err := webApp.App.Market.GetByListingCode(c.Context(), c.Params("code"))
		if err != nil {
			return utils.SendNotFound(c, "listing not found")
		}

		if err := webApp.App.Market.CancelListing(c.Context(), listing.ID, requesterID); err != nil {
			return sendMarketError(c, err)
		}

		return utils.SendSuccess(c, nil, "listing cancelled")
	}
}

// UserBids lists a nation's bid history
func UserBids(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bids, err := webApp.App.AuctionRepository.GetUserBids(c.Context(), c.Params("nationId"))
		if err != nil {
			return sendMarketError(c, err)
		}
		return utils.SendSuccess(c, bids, "")
	}
}

// NationDetail returns a nation snapshot
func NationDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		nation, err := webApp.App.NationRepository.GetByNationID(c.Context(), c.Params("id"))
		if err != nil {
			return utils.SendNotFound(c, "nation not found")
		}
		return utils.SendSuccess(c, nation, "")
	}
}

// NationCards lists a nation's card inventory, newest acquisitions first.
func NationCards(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cards, err := webApp.App.CardRepository.GetByOwner(c.Context(), c.Params("id"))
		if err != nil {
			slog.Error("Failed to load card inventory",
				slog.String("type", "api"),
				slog.String("nation_id", c.Params("id")),
				slog.Any("error", err))
			return utils.SendInternalServerError(c, "failed to load card inventory")
		}
		return utils.SendSuccess(c, cards, "")
	}
}

type componentsRequest struct {
	EconomyComponents    []string `json:"economyComponents"`
	GovernmentComponents []string `json:"governmentComponents"`
}

// UpdateComponents replaces a nation's selected atomic components. Unknown
// component tags are rejected before anything is written
func UpdateComponents(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req componentsRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "invalid components payload", nil)
		}

		details := make(map[string]string)
		for _, tag := range append(req.EconomyComponents, req.GovernmentComponents...) {
			if _, ok := webApp.App.Registry.Lookup(atomic.ComponentType(tag)); !ok {
				details[tag] = "unknown component"
			}
		}
		if len(details) > 0 {
			return utils.SendUnprocessableEntity(c, "unknown components", details)
		}

		nationID := c.Params("id")
		if err := webApp.App.NationRepository.UpdateComponents(c.Context(), nationID, req.EconomyComponents, req.GovernmentComponents); err != nil {
			return utils.SendInternalServerError(c, "failed to update components")
		}

		return utils.SendSuccess(c, nil, "components updated")
	}
}

// ComponentCatalog lists every component grouped by category, for builder UIs
func ComponentCatalog(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		catalog := make(map[string][]fiber.Map, len(atomic.Categories))
		for _, category := range atomic.Categories {
			var entries []fiber.Map
			for _, t := range atomic.CategoryComponents(category) {
				component, ok := webApp.App.Registry.Lookup(t)
				if !ok {
					continue
				}
				entries = append(entries, fiber.Map{
					"type":          string(t),
					"displayName":   atomic.DisplayName(t),
					"effectiveness": component.EffectivenessScore,
				})
			}
			catalog[atomic.CategoryLabel(category)] = entries
		}
		return utils.SendSuccess(c, catalog, "")
	}
}

// NationSynergies scores a nation's components against a counterpart, sized
// by embassy strength
func NationSynergies(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		nationID := c.Params("id")
		counterpartID := c.Params("counterpartId")

		nation, err := webApp.App.NationRepository.GetByNationID(c.Context(), nationID)
		if err != nil {
			return utils.SendNotFound(c, "nation not found")
		}

		var strength float64
		if embassy, err := webApp.App.NationRepository.GetEmbassy(c.Context(), nationID, counterpartID); err == nil {
			strength = embassy.Strength
		}

		var selected []atomic.SelectedComponent
		for _, tag := range append(nation.EconomyComponents, nation.GovernmentComponents...) {
			component, ok := webApp.App.Registry.Lookup(atomic.ComponentType(tag))
			if !ok {
				continue
			}
			selected = append(selected, atomic.SelectedComponent{
				Type:               component.Type,
				EffectivenessScore: component.EffectivenessScore,
			})
		}

		synergies := webApp.App.Synergy.CalculateAtomicSynergies(selected, strength)
		return utils.SendSuccess(c, fiber.Map{
			"embassyStrength": strength,
			"synergies":       synergies,
		}, "")
	}
}

// PolicyContext returns the builder snapshot policies are authored against
func PolicyContext(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snapshot, err := webApp.App.Policy.ContextFor(c.Context(), c.Params("id"))
		if err != nil {
			return utils.SendNotFound(c, "nation not found")
		}
		return utils.SendSuccess(c, snapshot, "")
	}
}

// PolicyValidate runs the validation pipeline without applying anything
func PolicyValidate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p policy.Policy
		if err := c.BodyParser(&p); err != nil {
			return utils.SendBadRequest(c, "invalid policy payload", nil)
		}

		result, err := webApp.App.Policy.Validate(c.Context(), c.Params("id"), p)
		if err != nil {
			return utils.SendNotFound(c, "nation not found")
		}
		return utils.SendSuccess(c, result, "")
	}
}

// PolicyImpact projects a policy's economic impact and phased timeline
func PolicyImpact(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p policy.Policy
		if err := c.BodyParser(&p); err != nil {
			return utils.SendBadRequest(c, "invalid policy payload", nil)
		}

		impact, err := webApp.App.Policy.CalculateImpact(c.Context(), c.Params("id"), p)
		if err != nil {
			return utils.SendNotFound(c, "nation not found")
		}
		return utils.SendSuccess(c, impact, "")
	}
}

// PolicyRecommendations returns rule-based suggestions for the nation
func PolicyRecommendations(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recommendations, err := webApp.App.Policy.Recommendations(c.Context(), c.Params("id"))
		if err != nil {
			return utils.SendNotFound(c, "nation not found")
		}
		return utils.SendSuccess(c, recommendations, "")
	}
}

// PolicyApply validates and applies a policy; failures come back as a
// structured result, not a 5xx
func PolicyApply(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p policy.Policy
		if err := c.BodyParser(&p); err != nil {
			return utils.SendBadRequest(c, "invalid policy payload", nil)
		}

		result, err := webApp.App.Policy.Apply(c.Context(), c.Params("id"), p)
		if err != nil {
			return utils.SendNotFound(c, "nation not found")
		}
		if !result.Success {
			return utils.SendJSON(c, fiber.StatusUnprocessableEntity, models.NewSuccessResponse(result, "policy rejected"))
		}
		return utils.SendSuccess(c, result, "policy applied")
	}
}
