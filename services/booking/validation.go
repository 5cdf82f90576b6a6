package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"rentify/models"
	"rentify/utils"
)

// normalizeVehicleIDs trims and de-duplicates ids, keeping request order.
func normalizeVehicleIDs(ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil, utils.BadRequest("at least one vehicle is required")
	}
	return out, nil
}

// validateWindow checks the shape of a requested rental window.
func validateWindow(start, end, now time.Time, loc *time.Location) error {
	if start.IsZero() || end.IsZero() {
		return utils.BadRequest("booking start and end times are required")
	}
	if !start.Before(end) {
		return utils.BadRequest("booking start %s must be before its end %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	if !onHalfHour(start.In(loc)) || !onHalfHour(end.In(loc)) {
		return utils.BadRequest("booking times must fall on the hour or half hour")
	}
	if !start.After(now) {
		return utils.BadRequest("booking must start in the future")
	}
	return nil
}

func onHalfHour(t time.Time) bool {
	return t.Second() == 0 && t.Nanosecond() == 0 && (t.Minute() == 0 || t.Minute() == 30)
}

func validatePickup(m models.PickupMethod) (models.PickupMethod, error) {
	switch m {
	case "":
		return models.PickupOffice, nil
	case models.PickupOffice, models.PickupDelivery:
		return m, nil
	}
	return "", utils.BadRequest("unknown pickup method %q", m)
}

// validateOperatingHours requires both endpoints of the rental to fall inside
// the provider's hours, inclusive. A close time earlier than the open time
// means the provider works overnight.
func validateOperatingHours(p *models.Provider, start, end time.Time, loc *time.Location) error {
	if p.AlwaysOpen() {
		return nil
	}
	open, err := parseClock(p.OpenTime)
	if err != nil {
		return fmt.Errorf("provider %s open time: %w", p.ID, err)
	}
	closing, err := parseClock(p.CloseTime)
	if err != nil {
		return fmt.Errorf("provider %s close time: %w", p.ID, err)
	}

	for _, t := range []time.Time{start, end} {
		local := t.In(loc)
		m := local.Hour()*60 + local.Minute()
		if !withinHours(m, open, closing) {
			return utils.BadRequest("%s is outside %s's operating hours (%s-%s)",
				local.Format("Mon 15:04"), providerName(p), p.OpenTime, p.CloseTime)
		}
	}
	return nil
}

func withinHours(m, open, closing int) bool {
	if open <= closing {
		return m >= open && m <= closing
	}
	return m >= open || m <= closing
}

// parseClock reads "HH:MM" as minutes after midnight.
func parseClock(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

func providerName(p *models.Provider) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}
