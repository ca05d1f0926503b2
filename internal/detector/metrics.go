package detector

import (
	"image"
	"image/draw"
	"math"
	"math/cmplx"
	"os"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"

	"go-screenshot-detector/internal/logger"
	"go-screenshot-detector/pkg/models"
)

// extractor computes the thirteen detection signals. Every signal is an
// independent function of the source image; a failing signal is replaced by
// its neutral default and never aborts the pass or leaks into another
// signal.
type extractor struct {
	recognizer TextRecognizer
	tempDir    string
}

func newExtractor(recognizer TextRecognizer) *extractor {
	return &extractor{
		recognizer: recognizer,
		tempDir:    os.TempDir(),
	}
}

// Extract computes the complete metric set. All thirteen fields are
// populated on return.
func (e *extractor) Extract(src *models.SourceImage) models.Metrics {
	gray := grayscale(src.Image)

	m := models.Metrics{
		Alpha:       src.HasAlpha,
		AspectRatio: aspectRatio(src.Width(), src.Height()),
		BorderVars:  borderVariances(gray),
		EXIFLevel:   src.EXIFTags,
	}

	ela, err := e.errorLevelStd(src.Image)
	if err != nil {
		logger.WithError(err).WithField("source", src.Reference).Debug("ELA unavailable, using neutral default")
		ela = 0
	}
	m.ELAStd = ela

	m.HorizEdgeRatio = horizontalEdgeRatio(gray)
	m.MoireScore = moireScore(gray)
	m.NoiseMedianVar = noiseMedianVariance(gray)
	m.Sharpness = laplacianVariance(gray)
	m.SolidColorRatio = solidColorRatio(gray)
	m.StatusBar = hasStatusBar(gray)

	conf, err := e.textConfidence(src.Image)
	if err != nil {
		logger.WithError(err).WithField("source", src.Reference).Debug("OCR unavailable, using neutral default")
		conf = 0
	}
	m.TextConf = conf

	m.VertSymmetry = verticalSymmetry(gray)

	return m
}

// grayscale converts any image to 8-bit grayscale anchored at the origin.
// Single-channel inputs pass through the same conversion, which is a copy.
func grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
	return gray
}

// popVariance is the population variance (second central moment), matching
// the semantics the scoring thresholds were tuned against.
func popVariance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	v := stat.Moment(2, xs, nil)
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// aspectRatio rounds to two decimals, halves away from zero. Ties at the
// third decimal land within the 0.05 scoring tolerance either way.
func aspectRatio(width, height int) float64 {
	if height == 0 {
		return 0
	}
	return math.Round(float64(width)/float64(height)*100) / 100
}

// borderVariances returns the grayscale variance of the top border strip
// and of the left+right border strips. Strip thickness adapts to the image
// so thumbnails keep proportionate borders.
func borderVariances(gray *image.Gray) [2]float64 {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()

	borderSize := 20
	if h/20 < borderSize {
		borderSize = h / 20
	}
	if w/20 < borderSize {
		borderSize = w / 20
	}
	if borderSize < 1 {
		return [2]float64{0, 0}
	}

	top := make([]float64, 0, borderSize*w)
	for y := 0; y < borderSize; y++ {
		for x := 0; x < w; x++ {
			top = append(top, float64(gray.GrayAt(x, y).Y))
		}
	}

	sides := make([]float64, 0, 2*borderSize*h)
	for y := 0; y < h; y++ {
		for x := 0; x < borderSize; x++ {
			sides = append(sides, float64(gray.GrayAt(x, y).Y))
		}
		for x := w - borderSize; x < w; x++ {
			sides = append(sides, float64(gray.GrayAt(x, y).Y))
		}
	}

	return [2]float64{popVariance(top), popVariance(sides)}
}

// sobelX computes the horizontal-gradient Sobel response at (x, y)
func sobelX(gray *image.Gray, x, y int) int {
	return -1*int(gray.GrayAt(x-1, y-1).Y) + 1*int(gray.GrayAt(x+1, y-1).Y) +
		-2*int(gray.GrayAt(x-1, y).Y) + 2*int(gray.GrayAt(x+1, y).Y) +
		-1*int(gray.GrayAt(x-1, y+1).Y) + 1*int(gray.GrayAt(x+1, y+1).Y)
}

// sobelY computes the vertical-gradient Sobel response at (x, y)
func sobelY(gray *image.Gray, x, y int) int {
	return -1*int(gray.GrayAt(x-1, y-1).Y) - 2*int(gray.GrayAt(x, y-1).Y) - 1*int(gray.GrayAt(x+1, y-1).Y) +
		1*int(gray.GrayAt(x-1, y+1).Y) + 2*int(gray.GrayAt(x, y+1).Y) + 1*int(gray.GrayAt(x+1, y+1).Y)
}

// horizontalEdgeRatio is the share of total gradient energy carried by
// horizontal edges (vertical-axis gradients). UI chrome is full of them.
func horizontalEdgeRatio(gray *image.Gray) float64 {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	if w < 3 || h < 3 {
		return 0
	}

	var sumX, sumY float64
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			sumX += math.Abs(float64(sobelX(gray, x, y)))
			sumY += math.Abs(float64(sobelY(gray, x, y)))
		}
	}

	total := sumX + sumY
	if total == 0 {
		return 0
	}
	return sumY / total
}

// moireScore measures high-frequency spectral energy. The magnitude
// spectrum is centered, a square around the DC component is zeroed to
// discard low-frequency content, and the mean of the remainder is
// returned. Photographed displays light up the high bands.
func moireScore(gray *image.Gray) float64 {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	if w < 2 || h < 2 {
		return 0
	}

	field := make([]complex128, h*w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			field[y*w+x] = complex(float64(gray.GrayAt(x, y).Y), 0)
		}
	}

	// Row pass then column pass gives the 2-D transform.
	rowFFT := fourier.NewCmplxFFT(w)
	rowOut := make([]complex128, w)
	for y := 0; y < h; y++ {
		row := field[y*w : (y+1)*w]
		rowFFT.Coefficients(rowOut, row)
		copy(row, rowOut)
	}

	colFFT := fourier.NewCmplxFFT(h)
	colIn := make([]complex128, h)
	colOut := make([]complex128, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			colIn[y] = field[y*w+x]
		}
		colFFT.Coefficients(colOut, colIn)
		for y := 0; y < h; y++ {
			field[y*w+x] = colOut[y]
		}
	}

	// Shift so the DC component sits at the center.
	magnitude := make([]float64, h*w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sy := (y + h/2) % h
			sx := (x + w/2) % w
			magnitude[sy*w+sx] = cmplx.Abs(field[y*w+x])
		}
	}

	centerY, centerX := h/2, w/2
	maskSize := centerY
	if centerX < maskSize {
		maskSize = centerX
	}
	maskSize /= 4

	for y := centerY - maskSize; y < centerY+maskSize; y++ {
		for x := centerX - maskSize; x < centerX+maskSize; x++ {
			if y >= 0 && y < h && x >= 0 && x < w {
				magnitude[y*w+x] = 0
			}
		}
	}

	return stat.Mean(magnitude, nil)
}

// median25 returns the median of a 5x5 neighborhood sample
func median25(window []int) int {
	sort.Ints(window)
	return window[len(window)/2]
}

// noiseMedianVariance is the variance of the residual left after 5x5
// median filtering. Sensor noise survives the filter; rendered UI pixels
// mostly do not.
func noiseMedianVariance(gray *image.Gray) float64 {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	if w == 0 || h == 0 {
		return 0
	}

	clamp := func(v, lo, hi int) int {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}

	window := make([]int, 0, 25)
	residual := make([]float64, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			window = window[:0]
			for dy := -2; dy <= 2; dy++ {
				for dx := -2; dx <= 2; dx++ {
					sx := clamp(x+dx, 0, w-1)
					sy := clamp(y+dy, 0, h-1)
					window = append(window, int(gray.GrayAt(sx, sy).Y))
				}
			}
			med := median25(window)
			residual = append(residual, float64(gray.GrayAt(x, y).Y)-float64(med))
		}
	}

	return popVariance(residual)
}

// laplacianVariance measures sharpness as the variance of the discrete
// Laplacian over the image interior. Kernel: [0 1 0; 1 -4 1; 0 1 0].
func laplacianVariance(gray *image.Gray) float64 {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	if w < 3 || h < 3 {
		return 0
	}

	data := make([]float64, 0, (w-2)*(h-2))
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			center := float64(gray.GrayAt(x, y).Y)
			top := float64(gray.GrayAt(x, y-1).Y)
			bottom := float64(gray.GrayAt(x, y+1).Y)
			left := float64(gray.GrayAt(x-1, y).Y)
			right := float64(gray.GrayAt(x+1, y).Y)

			data = append(data, -4*center+top+bottom+left+right)
		}
	}

	return popVariance(data)
}

// solidColorRatio is the fraction of pixels whose 10x10 neighborhood
// average falls below 5. Flat dark regions are typical of rendered UI
// backgrounds.
func solidColorRatio(gray *image.Gray) float64 {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	if w == 0 || h == 0 {
		return 0
	}

	// Summed-area table for O(1) window sums; pixels outside the image
	// contribute zero, like the zero-padded convolution this mirrors.
	integral := make([]float64, (h+1)*(w+1))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			integral[(y+1)*(w+1)+(x+1)] = float64(gray.GrayAt(x, y).Y) +
				integral[y*(w+1)+(x+1)] +
				integral[(y+1)*(w+1)+x] -
				integral[y*(w+1)+x]
		}
	}

	windowSum := func(y0, x0, y1, x1 int) float64 {
		if y0 < 0 {
			y0 = 0
		}
		if x0 < 0 {
			x0 = 0
		}
		if y1 > h {
			y1 = h
		}
		if x1 > w {
			x1 = w
		}
		if y0 >= y1 || x0 >= x1 {
			return 0
		}
		return integral[y1*(w+1)+x1] - integral[y0*(w+1)+x1] -
			integral[y1*(w+1)+x0] + integral[y0*(w+1)+x0]
	}

	const kernelSize = 10
	solid := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := windowSum(y-kernelSize/2, x-kernelSize/2, y+kernelSize/2, x+kernelSize/2)
			if sum/(kernelSize*kernelSize) < 5 {
				solid++
			}
		}
	}

	return float64(solid) / float64(w*h)
}

// hasStatusBar reports whether the top strip looks like a mobile status
// bar: low grayscale variance over a strip taller than 20 pixels.
func hasStatusBar(gray *image.Gray) bool {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()

	stripHeight := 100
	if h/10 < stripHeight {
		stripHeight = h / 10
	}
	if stripHeight <= 20 {
		return false
	}

	strip := make([]float64, 0, stripHeight*w)
	for y := 0; y < stripHeight; y++ {
		for x := 0; x < w; x++ {
			strip = append(strip, float64(gray.GrayAt(x, y).Y))
		}
	}

	return popVariance(strip) < 500
}

// verticalSymmetry is the Pearson correlation between the left half and
// the mirrored right half, floored at zero. Centered UI layouts correlate
// strongly; handheld document photos rarely do.
func verticalSymmetry(gray *image.Gray) float64 {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	mid := w / 2
	if mid < 1 || h < 1 {
		return 0
	}

	left := make([]float64, 0, mid*h)
	right := make([]float64, 0, mid*h)
	for y := 0; y < h; y++ {
		for x := 0; x < mid; x++ {
			left = append(left, float64(gray.GrayAt(x, y).Y))
			right = append(right, float64(gray.GrayAt(w-1-x, y).Y))
		}
	}

	corr := stat.Correlation(left, right, nil)
	if math.IsNaN(corr) || corr < 0 {
		return 0
	}
	return corr
}

// textConfidence asks the OCR collaborator for per-token confidences and
// averages them, skipping tokens the engine refused to rate.
func (e *extractor) textConfidence(img image.Image) (float64, error) {
	if e.recognizer == nil {
		return 0, nil
	}

	tokens, err := e.recognizer.Recognize(img)
	if err != nil {
		return 0, err
	}

	confidences := make([]float64, 0, len(tokens))
	for _, token := range tokens {
		if token.Confidence != -1 {
			confidences = append(confidences, token.Confidence)
		}
	}
	if len(confidences) == 0 {
		return 0, nil
	}

	return stat.Mean(confidences, nil), nil
}
