package orders

import (
	"fmt"
	"math/rand"
	"myFashionHub/domain"
	"time"
)

var (
	carriers = []string{"Delhivery", "Bluedart", "Ecom Express", "XpressBees"}

	hubs = []string{"Mumbai", "Delhi", "Bangalore", "Hyderabad", "Pune"}
)

// generateTracking seeds a shipment document for a fresh order. Real
// carrier integration would replace this; the shape matches what the
// order detail view renders.
func (s *OrdersService) generateTracking() domain.Tracking {
	now := s.now()
	carrier := carriers[rand.Intn(len(carriers))]
	hub := hubs[rand.Intn(len(hubs))]

	// 3 to 7 days out.
	eta := now.AddDate(0, 0, 3+rand.Intn(5))

	return domain.Tracking{
		Number:            fmt.Sprintf("%s%010d", trackingPrefix(carrier), rand.Int63n(1e10)),
		Carrier:           carrier,
		EstimatedDelivery: eta.Format("2006-01-02"),
		CurrentLocation:   hub,
		Status:            domain.OrderStatusProcessing,
		Timeline: []domain.TrackingEvent{
			{
				Status:    "Order placed",
				Location:  hub,
				Timestamp: now.Format(time.RFC3339),
			},
		},
	}
}

func trackingPrefix(carrier string) string {
	switch carrier {
	case "Delhivery":
		return "DL"
	case "Bluedart":
		return "BD"
	case "Ecom Express":
		return "EE"
	default:
		return "XB"
	}
}
