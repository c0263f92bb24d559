package reservation

import "time"

// CalculateAvailability builds the slot grid for a court on a date.
// A slot is unavailable iff an approved reservation of that court and date
// covers it; the covering reservation's ID is attached. Reservations in any
// other status, or for another court or date, are ignored.
func CalculateAvailability(courtID string, date time.Time, reservations []*Reservation) *Availability {
	blocking := make([]*Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.Status.Blocking() && r.CourtID == courtID && r.Date.Equal(date) {
			blocking = append(blocking, r)
		}
	}

	slots := make([]TimeSlot, 0, SlotCount)
	for _, h := range Slots() {
		slot := TimeSlot{Time: h, Available: true}
		for _, r := range blocking {
			if r.Covers(h) {
				slot.Available = false
				slot.ReservationID = r.ID
				break
			}
		}
		slots = append(slots, slot)
	}

	return &Availability{
		CourtID: courtID,
		Date:    date,
		Slots:   slots,
	}
}

// Slot returns the grid entry starting at h.
func (a *Availability) Slot(h Hour) (TimeSlot, bool) {
	if !h.OnGrid() || len(a.Slots) != SlotCount {
		return TimeSlot{}, false
	}
	return a.Slots[int(h-FirstSlot)], true
}
