package tracer

import (
	"io"

	"VideoTube.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitJaeger 设置全局 tracer；未启用时保留 opentracing 的 NoopTracer
func InitJaeger(c config.Jaeger) (io.Closer, error) {
	if !c.Enabled {
		return nopCloser{}, nil
	}
	cfg := jaegercfg.Configuration{
		ServiceName: c.ServiceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:           false,
			LocalAgentHostPort: c.AgentAddr,
		},
	}
	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(jaeger.StdLogger))
	if err != nil {
		return nil, errors.Wrap(err, "init jaeger tracer failed")
	}
	opentracing.SetGlobalTracer(tracer)
	hlog.Infof("Jaeger tracer enabled, agent %s", c.AgentAddr)
	return closer, nil
}
