package processor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/WB_L3/promo/internal/campaign"
	"github.com/ds124wfegd/WB_L3/promo/internal/entity"
	"github.com/ds124wfegd/WB_L3/promo/internal/pkg/compose"
	"github.com/ds124wfegd/WB_L3/promo/internal/pkg/storage"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	skusDir       = "skus"
	outputDirName = "output"
)

type Options struct {
	Background   string
	TargetHeight int
	FontPaths    []string
	Workers      int
	JPEGQuality  int
}

// Pipeline renders campaigns from an events tree:
//
//	<events>/<background>
//	<events>/<campaign>/config.txt
//	<events>/<campaign>/skus/<category>/<image>
//
// and writes <output>/<campaign>/<category>/<image>.
type Pipeline struct {
	events storage.FileStorage
	output storage.FileStorage
	text   *compose.TextRenderer
	opts   Options
}

func NewPipeline(events, output storage.FileStorage, text *compose.TextRenderer, opts Options) *Pipeline {
	if opts.Background == "" {
		opts.Background = "background.jpg"
	}
	if opts.TargetHeight <= 0 {
		opts.TargetHeight = compose.DefaultTargetHeight
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = 95
	}
	if text == nil {
		text = compose.NewTextRenderer(opts.FontPaths)
	}
	return &Pipeline{events: events, output: output, text: text, opts: opts}
}

// Campaigns lists campaign directories of the events tree.
func (p *Pipeline) Campaigns() ([]string, error) {
	dirs, err := p.events.ListDirs("")
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	out := dirs[:0]
	for _, d := range dirs {
		if d != outputDirName {
			out = append(out, d)
		}
	}
	return out, nil
}

// RunAll renders every campaign. A campaign that fails structurally is logged
// and left out of the reports; it does not stop the others.
func (p *Pipeline) RunAll(ctx context.Context) ([]*entity.CampaignReport, error) {
	names, err := p.Campaigns()
	if err != nil {
		return nil, err
	}
	var reports []*entity.CampaignReport
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		report, err := p.RunCampaign(ctx, name)
		if err != nil {
			logrus.WithField("campaign", name).Errorf("Campaign skipped: %v", err)
			continue
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// LoadBackground decodes the shared backdrop and normalises its height.
func (p *Pipeline) LoadBackground() (*image.NRGBA, error) {
	if !p.events.Exists(p.opts.Background) {
		return nil, fmt.Errorf("%s: %w", p.opts.Background, entity.ErrBackgroundMissing)
	}
	img, err := p.decode(p.opts.Background)
	if err != nil {
		return nil, err
	}
	return compose.NormalizeBackground(img, p.opts.TargetHeight), nil
}

// RunCampaign recolours the backdrop once and renders every product image of
// the campaign on its own copy. Per-image failures land in the report; only
// structural problems are returned as errors.
func (p *Pipeline) RunCampaign(ctx context.Context, name string) (*entity.CampaignReport, error) {
	log := logrus.WithField("campaign", name)
	report := &entity.CampaignReport{Campaign: name}

	cfg, warnings, err := campaign.Load(p.events.Path(path.Join(name, campaign.ConfigFileName)))
	if errors.Is(err, entity.ErrConfigMissing) {
		log.Info("No config, nothing to render")
		report.Skipped = true
		return report, nil
	}
	if err != nil {
		return report, fmt.Errorf("load config: %w", err)
	}
	for _, w := range warnings {
		log.Warnf("Config entry ignored: %v", w)
		report.Warnings = append(report.Warnings, w.Error())
	}

	categories, err := p.events.ListDirs(path.Join(name, skusDir))
	if err != nil {
		return report, fmt.Errorf("%s: %w: %v", name, entity.ErrCampaignStructure, err)
	}

	bg, err := p.LoadBackground()
	if err != nil {
		return report, err
	}
	recolored := compose.Recolor(bg, cfg.ColorMappings)
	textColor := compose.ResolveTextColor(cfg.TextColor, recolored)

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(p.opts.Workers)

	for _, category := range categories {
		files, err := p.events.ListFiles(path.Join(name, skusDir, category))
		if err != nil {
			log.WithField("category", category).Errorf("List images: %v", err)
			continue
		}
		for _, file := range files {
			if !isProductImage(file) {
				continue
			}
			if err := ctx.Err(); err != nil {
				_ = g.Wait()
				return report, err
			}
			g.Go(func() error {
				out, err := p.renderFile(name, category, file, recolored, cfg, textColor)

				mu.Lock()
				defer mu.Unlock()
				entry := log.WithFields(logrus.Fields{"category": category, "image": file})
				if err != nil {
					entry.Errorf("Render failed: %v", err)
					report.Failures = append(report.Failures, entity.ImageFailure{
						Category: category,
						Image:    file,
						Error:    err.Error(),
					})
					return nil
				}
				entry.Info("Rendered")
				report.Outputs = append(report.Outputs, out)
				return nil
			})
		}
	}
	_ = g.Wait()

	sort.Strings(report.Outputs)
	sort.Slice(report.Failures, func(i, j int) bool {
		a, b := report.Failures[i], report.Failures[j]
		return a.Category+"/"+a.Image < b.Category+"/"+b.Image
	})
	log.Infof("Campaign done: %d rendered, %d failed", len(report.Outputs), len(report.Failures))
	return report, nil
}

func (p *Pipeline) renderFile(name, category, file string, recolored *image.NRGBA, cfg *entity.CampaignConfig, textColor color.Color) (string, error) {
	product, err := p.decode(path.Join(name, skusDir, category, file))
	if err != nil {
		return "", err
	}

	canvas := p.RenderProduct(recolored, product, cfg, textColor)

	outPath := path.Join(name, category, file)
	if err := p.encode(outPath, compose.Flatten(canvas)); err != nil {
		return "", err
	}
	return outPath, nil
}

// RenderProduct produces one finished composite. recolored is only read.
func (p *Pipeline) RenderProduct(recolored *image.NRGBA, product image.Image, cfg *entity.CampaignConfig, textColor color.Color) *image.NRGBA {
	cutout := compose.RemoveBackground(product)
	canvas := compose.CompositeProduct(recolored, cutout, cfg.Placement)
	for _, role := range cfg.TextRoles() {
		canvas = p.text.DrawText(canvas, role, textColor)
	}
	return canvas
}

func (p *Pipeline) decode(name string) (image.Image, error) {
	r, err := p.events.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", name, entity.ErrDecodeFailure, err)
	}
	defer r.Close()

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", name, entity.ErrDecodeFailure, err)
	}
	return img, nil
}

func (p *Pipeline) encode(name string, img image.Image) error {
	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		format = imaging.PNG
	}
	err = p.output.SaveFunc(name, func(w io.Writer) error {
		return imaging.Encode(w, img, format, imaging.JPEGQuality(p.opts.JPEGQuality))
	})
	if err != nil {
		return fmt.Errorf("%s: %w: %v", name, entity.ErrEncodeFailure, err)
	}
	return nil
}

func isProductImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
