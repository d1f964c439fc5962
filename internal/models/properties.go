package models

// RGB is an average color with 8-bit channel scale.
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// ImageProperties are the coarse statistics of a decoded upload.
type ImageProperties struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	AspectRatio      float64 `json:"aspect_ratio"`
	ColorVariance    float64 `json:"color_variance"`
	AverageColor     RGB     `json:"average_color"`
	IsMonochrome     bool    `json:"is_monochrome"`
	IsScreenshotLike bool    `json:"is_screenshot_like"`
	IsIconLike       bool    `json:"is_icon_like"`
}
