package lot

// BuildVariant derives the field mapping for one (source lot, duration)
// variant: recalculated price, rewritten titles, rewritten descriptions and
// the new-listing marker. Descriptions are rewritten with insertion
// disabled, only an already present mention changes there.
func BuildVariant(base Base, hours, discountPct float64) Fields {
	fields := base.Fields.Clone()
	fields[FieldPrice] = VariantPrice(base.PricePerHour, hours, discountPct).Storage
	if base.TitleRU != "" {
		fields[FieldSummaryRU] = RewriteDuration(base.TitleRU, hours, LocaleRU, true)
	}
	if base.TitleEN != "" {
		fields[FieldSummaryEN] = RewriteDuration(base.TitleEN, hours, LocaleEN, true)
	}
	if desc := fields[FieldDescRU]; desc != "" {
		fields[FieldDescRU] = RewriteDuration(desc, hours, LocaleRU, false)
	}
	if desc := fields[FieldDescEN]; desc != "" {
		fields[FieldDescEN] = RewriteDuration(desc, hours, LocaleEN, false)
	}
	fields[FieldOfferID] = NewListingMarker
	return fields
}
