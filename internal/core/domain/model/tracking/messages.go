package tracking

import "fmt"

// statusPair keys notification messages by the ordered (from, to) pair of a
// committed transition.
type statusPair struct {
	from Status
	to   Status
}

func getTransitionMessages() map[statusPair]string {
	return map[statusPair]string{
		{StatusAssigned, StatusHeadingToPickup}:     "Your courier is on the way to pick up the order.",
		{StatusHeadingToPickup, StatusAtPickup}:     "Your courier has arrived at the pickup point.",
		{StatusAssigned, StatusAtPickup}:            "Your courier has arrived at the pickup point.",
		{StatusAtPickup, StatusPickedUp}:            "Your order has been picked up.",
		{StatusPickedUp, StatusHeadingToDelivery}:   "Your order is on its way.",
		{StatusHeadingToDelivery, StatusAtDelivery}: "Your courier has arrived at the delivery address.",
		{StatusAtDelivery, StatusDelivered}:         "Your order has been delivered. Enjoy!",
		{StatusAssigned, StatusCancelled}:           "The delivery has been cancelled before pickup.",
	}
}

// TransitionMessage returns the human-readable notification text for a
// committed transition. If no specific message is registered for the (from, to)
// pair, a generic fallback naming the new status description is produced.
// The message is handed to the notification collaborator; this package never
// dispatches anything itself.
func TransitionMessage(from Status, to Status) string {
	if msg, ok := getTransitionMessages()[statusPair{from, to}]; ok {
		return msg
	}
	return fmt.Sprintf("Delivery update: %s.", to.Description())
}
