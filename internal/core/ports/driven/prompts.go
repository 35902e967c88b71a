package driven

// PromptStore provides access to analysis prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names.
const (
	// PromptAnalysis asks an external model for a reading of the pillars.
	// The template is a text/template over services.PromptData.
	PromptAnalysis = "analysis"
)

// DefaultAnalysisPrompt is used when no PromptStore is configured or the
// stored template cannot be loaded.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const DefaultAnalysisPrompt = `你是一位精通八字命理的资深命理师。请先在内部分步推演，再用通俗的语言输出结论，避免堆砌术语，所有结论都要说明其五行生克依据。

八字信息：
年柱：{{.Year}}
月柱：{{.Month}}
日柱：{{.Day}}
时柱：{{.Hour}}

公历：{{.SolarDate}}
农历：{{.LunarDate}}
真太阳时：{{.LocalTime}}
{{- if .Gender}}
性别：{{.Gender}}
{{- end}}

相关命理知识：
{{if .Knowledge}}{{.Knowledge}}{{else}}（无匹配资料）{{end}}

请提供：
1. 八字基本特征
2. 五行属性分析
3. 命局格局判断
4. 运势发展预测
5. 事业、财运、姻缘等方面的建议

注意：分析要专业、客观，避免过于玄学或迷信的说法。命理只是参考，选择权始终在自己手中。`
