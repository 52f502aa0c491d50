package walkstatus

// Lados de un paseo.
const (
	SideOwner  = "owner"
	SideWalker = "walker"
)

// Participants son las dos partes de un paseo junto con el estado crudo del
// backend. Chat y tracking lo usan para autorizar.
type Participants struct {
	Status   string
	OwnerID  string
	WalkerID string
}

// Side devuelve de qué lado del paseo está userID, o "" si no participa.
func (p Participants) Side(userID string) string {
	switch {
	case userID == "":
		return ""
	case userID == p.OwnerID:
		return SideOwner
	case userID == p.WalkerID:
		return SideWalker
	default:
		return ""
	}
}
