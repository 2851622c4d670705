// Package aurora collects the global auroral precipitation forecast
// (OVATION Prime probability grid), published as a flat array of
// [longitude, latitude, probability] triplets. Samples are reshaped
// onto a fixed 1°x1° global grid in the feed's native 0..360°
// longitude convention; cells without a sample are filled with NaN.
package aurora
