package transform

// RandomResizeCrop scales the shortest side to the target, takes a randomly
// placed crop of exactly w by h, and re-anchors the result at the origin.
// The standard augmentation for training pipelines.
func RandomResizeCrop(w, h int) Transform {
	return Compose(ScaleKeepAspect(w, h), RandomCrop(w, h), PinOrigin())
}

// CenterResizeCrop scales the shortest side to the target, takes a centered
// crop of exactly w by h, and re-anchors the result at the origin. The
// deterministic counterpart of RandomResizeCrop, typical for validation.
func CenterResizeCrop(w, h int) Transform {
	return Compose(ScaleKeepAspect(w, h), CenterCrop(w, h), PinOrigin())
}

// ResizePadDivisible scales the shortest side to the target, pads each
// extent up to the nearest multiple of by, and re-anchors at the origin.
func ResizePadDivisible(w, h, by int) Transform {
	return Compose(ScaleKeepAspect(w, h), PadDivisible(by), PinOrigin())
}
