package model

// ParcelRequest is the payload of a parcel delivery submission.
type ParcelRequest struct {
	ParcelType       string  `json:"parcelType"`
	Dimensions       string  `json:"dimensions,omitempty"`
	PickupCity       string  `json:"pickupCity"`
	DeliveryCity     string  `json:"deliveryCity"`
	PickupDate       string  `json:"pickupDate"`
	DeliveryDate     string  `json:"deliveryDate"`
	Instructions     string  `json:"instructions,omitempty"`
	PaymentMethod    string  `json:"paymentMethod"`
	Weight           float64 `json:"weight"`
	ParcelValue      float64 `json:"parcelValue,omitempty"`
	TotalPrice       int64   `json:"totalPrice"`
	SelectedTraveler int     `json:"selectedTraveler"`
	Fragile          bool    `json:"fragile"`
	Perishable       bool    `json:"perishable"`
	Liquid           bool    `json:"liquid"`
}

// DocumentRequest is the payload of a document delivery submission.
type DocumentRequest struct {
	DocumentType        string  `json:"documentType"`
	DocumentDescription string  `json:"documentDescription"`
	EnvelopeSize        string  `json:"envelopeSize"`
	SecurityLevel       string  `json:"securityLevel"`
	PickupCity          string  `json:"pickupCity"`
	DeliveryCity        string  `json:"deliveryCity"`
	PickupDate          string  `json:"pickupDate"`
	DeliveryDate        string  `json:"deliveryDate"`
	PickupAddress       string  `json:"pickupAddress"`
	DeliveryAddress     string  `json:"deliveryAddress"`
	RecipientInfo       string  `json:"recipientInfo"`
	PaymentMethod       string  `json:"paymentMethod"`
	SpecialInstructions string  `json:"specialInstructions,omitempty"`
	SelectedCarrier     string  `json:"selectedCarrier"`
	Weight              float64 `json:"weight,omitempty"`
	TotalPrice          int64   `json:"totalPrice"`
	ExpressDelivery     bool    `json:"expressDelivery"`
}

// ShoppingRequest is the payload of a shopping delivery submission.
type ShoppingRequest struct {
	ItemType            string  `json:"itemType"`
	ItemDescription     string  `json:"itemDescription"`
	StorePreference     string  `json:"storePreference,omitempty"`
	ShoppingCity        string  `json:"shoppingCity"`
	DeliveryAddress     string  `json:"deliveryAddress"`
	DeliveryDate        string  `json:"deliveryDate"`
	TimePreference      string  `json:"timePreference,omitempty"`
	PaymentMethod       string  `json:"paymentMethod"`
	SpecialInstructions string  `json:"specialInstructions,omitempty"`
	SelectedShopper     string  `json:"selectedShopper"`
	ItemPrice           float64 `json:"itemPrice"`
	TotalPrice          int64   `json:"totalPrice"`
	Quantity            int     `json:"quantity"`
	BrandSpecific       bool    `json:"brandSpecific"`
	OriginalPackaging   bool    `json:"originalPackaging"`
	BillRequired        bool    `json:"billRequired"`
}

// CommuteSchedule is the payload of a daily commute schedule.
type CommuteSchedule struct {
	ScheduleName   string   `json:"scheduleName"`
	PickupPoint    string   `json:"pickupPoint"`
	DropPoint      string   `json:"dropPoint"`
	StartTime      string   `json:"startTime"`
	ReturnTime     string   `json:"returnTime,omitempty"`
	ScheduleNotes  string   `json:"scheduleNotes,omitempty"`
	OperatingDays  []string `json:"operatingDays"`
	PricePerSeat   int64    `json:"pricePerSeat"`
	AvailableSeats int      `json:"availableSeats"`
	JoinedMembers  int      `json:"joinedMembers"`
}

// ContactMessage is the payload of a contact/support message.
type ContactMessage struct {
	FullName    string `json:"fullName"`
	ContactInfo string `json:"contactInfo"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
}

// JourneyPost is the payload of a posted journey offering seats and delivery space.
type JourneyPost struct {
	Name              string   `json:"name"`
	Phone             string   `json:"phone"`
	Vehicle           string   `json:"vehicle"`
	From              string   `json:"from"`
	To                string   `json:"to"`
	Date              string   `json:"date"`
	Time              string   `json:"time"`
	Payment           string   `json:"payment"`
	Notes             string   `json:"notes,omitempty"`
	Services          []string `json:"services"`
	PassengerPrice    int64    `json:"passengerPrice,omitempty"`
	SmallParcelPrice  int64    `json:"smallParcelPrice,omitempty"`
	MediumParcelPrice int64    `json:"mediumParcelPrice,omitempty"`
	DocumentsPrice    int64    `json:"documentsPrice,omitempty"`
	Seats             int      `json:"seats"`
}
