package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	feesdomain "github.com/coachably/coachpay/internal/fees/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// HandleGrossAmount answers "what must the client be charged so the
// coach receives net", using the payer's effective fee schedule.
func (s *Server) HandleGrossAmount(c *gin.Context) {
	net, err := decimal.NewFromString(strings.TrimSpace(c.Query("net")))
	if err != nil || net.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_net_amount"})
		return
	}
	coachPaysFee := parseBool(c.Query("coach_pays_fee"))

	schedule := s.applyCardOrigin(c, s.scheduleForPayer(c))
	gross := s.solver.SolveGrossAmount(net, coachPaysFee, schedule)
	fee := s.solver.SolveFee(net, coachPaysFee, schedule)

	c.JSON(http.StatusOK, gin.H{
		"net":          net,
		"gross":        gross,
		"fee":          fee,
		"country_code": schedule.CountryCode,
	})
}

// HandleBreakdown splits a gross amount into processor fee, platform
// fee and net coach income.
func (s *Server) HandleBreakdown(c *gin.Context) {
	gross, err := decimal.NewFromString(strings.TrimSpace(c.Query("gross")))
	if err != nil || gross.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_gross_amount"})
		return
	}
	coachPaysFee := parseBool(c.Query("coach_pays_fee"))

	paymentType := feesdomain.PaymentType(strings.TrimSpace(c.Query("payment_type")))
	if paymentType == "" {
		paymentType = feesdomain.PaymentTypeOneTime
	}

	var explicitTotalFees *decimal.Decimal
	if raw := strings.TrimSpace(c.Query("total_fees")); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_total_fees"})
			return
		}
		explicitTotalFees = &parsed
	}

	breakdown := s.calculator.Breakdown(feesdomain.BreakdownInput{
		Gross:              gross,
		CoachPaysFee:       coachPaysFee,
		PlatformPercentage: s.cfg.PlatformFeePercentage,
		PaymentType:        paymentType,
		Schedule:           s.applyCardOrigin(c, s.scheduleForPayer(c)),
		ExplicitTotalFees:  explicitTotalFees,
	})

	c.JSON(http.StatusOK, breakdown)
}

// scheduleForPayer resolves the fee schedule from either user_id or an
// explicit country_id + agreement pair. Resolution never fails; bad
// input falls back to the default schedule.
func (s *Server) scheduleForPayer(c *gin.Context) feesdomain.FeeSchedule {
	ctx := c.Request.Context()

	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		userID, err := snowflake.ParseString(raw)
		if err == nil {
			return s.resolver.ResolveForUser(ctx, userID)
		}
		return s.resolver.Default()
	}

	var countryID snowflake.ID
	if raw := strings.TrimSpace(c.Query("country_id")); raw != "" {
		if parsed, err := snowflake.ParseString(raw); err == nil {
			countryID = parsed
		}
	}
	agreement := strings.TrimSpace(c.Query("service_agreement"))
	return s.resolver.Resolve(ctx, countryID, agreement)
}

func (s *Server) applyCardOrigin(c *gin.Context, schedule feesdomain.FeeSchedule) feesdomain.FeeSchedule {
	if parseBool(c.Query("intl_card")) {
		return schedule.ForIntlCard()
	}
	return schedule
}

func parseBool(raw string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return value
}
