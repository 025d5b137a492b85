package appointment

// Breakdown is the price decomposition snapshotted onto an appointment at
// creation time. Amounts are minor currency units.
type Breakdown struct {
	Price         int
	VAT           int
	AfterHoursFee int
	Discount      int
	Total         int
}

// vatRate is the baseline tax policy: 10% of the base consultation price.
const vatRate = 0.1

// ComputeBreakdown derives the charge for a consultation at the provider's
// base price. The fee and discount knobs exist for future pricing policies
// and are zero in the baseline.
func ComputeBreakdown(basePrice int) Breakdown {
	vat := int(float64(basePrice) * vatRate)
	return Breakdown{
		Price: basePrice,
		VAT:   vat,
		Total: basePrice + vat,
	}
}
