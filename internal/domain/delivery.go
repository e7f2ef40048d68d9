package domain

// Represents a single milk delivery row as held by the backing store.
// All fields are kept in the textual form the store returns; no field is
// guaranteed unique and the date format is whatever the caller wrote.
type DeliveryRecord struct {
	User     string
	Address  string
	Milk     string
	Partner  string
	Quantity string
	Date     string
}

// Opaque position of a record inside its store (sheet row number, primary key, ...).
// A RowRef is only meaningful within the request that listed it.
type RowRef int64

// A record together with the position it was read from.
type StoredRecord struct {
	Ref RowRef
	DeliveryRecord
}

// Partial update of a DeliveryRecord. Nil fields are left unchanged.
type RecordPatch struct {
	Address  *string
	Milk     *string
	Partner  *string
	Quantity *string
	Date     *string
}

// Apply overwrites only the fields present in the patch.
func (p RecordPatch) Apply(r *DeliveryRecord) {
	if p.Address != nil {
		r.Address = *p.Address
	}
	if p.Milk != nil {
		r.Milk = *p.Milk
	}
	if p.Partner != nil {
		r.Partner = *p.Partner
	}
	if p.Quantity != nil {
		r.Quantity = *p.Quantity
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
}
