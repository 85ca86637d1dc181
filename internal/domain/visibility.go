package domain

// CanViewGiftDetails is the surprise rule: the event creator must never see
// gift records for their own event, so it returns false exactly when the
// viewer is the creator. Everyone else, including anonymous viewers who
// resolved the event by key, sees full records. Every gift read path must
// consult this function rather than re-implementing the check.
func CanViewGiftDetails(viewerID string, event *Event) bool {
	if event == nil {
		return false
	}
	return viewerID == "" || viewerID != event.CreatorID
}
