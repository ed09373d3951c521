package export

import (
	"time"

	"estimator/internal/app/estimate"
)

const DefaultTitle = "견적서"

// FileName builds "<title without whitespace>_<YYYYMMDD>.<ext>".
func FileName(title, ext string, now time.Time) string {
	name := estimate.CompactTitle(title)
	if name == "" {
		name = DefaultTitle
	}
	return name + "_" + now.Format("20060102") + "." + ext
}
