package domain

// Subscriber is the only persisted entity. The PSID (page-scoped sender id)
// is assigned by the messaging platform and doubles as the storage key; the
// existence of a record means "currently subscribed".
type Subscriber struct {
	PSID string `json:"psid" dynamodbav:"psid"`
}
