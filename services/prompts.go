package services

import (
	"fmt"
	"strings"

	"stylistapi/models"
)

const (
	DefaultPose       = "自然站立"
	DefaultExpression = "自然微笑"
)

// UsesGarmentImage reports whether a try-on sends the garment as a second
// inline image. Only custom uploads carrying embedded image data qualify;
// catalog stock photos are decorative and never sent to the model.
func UsesGarmentImage(item models.ClothingItem) bool {
	return item.IsCustom && IsDataURI(item.Image)
}

const tryOnPromptWithGarmentImage = `任务：生成一张高质量的写实人像照片。

输入说明：
- 第一张图片：原始模特图（参考人物ID）。
- 第二张图片：目标服装图（参考服装样式）。

生成要求：
1. **严格保持人物身份（ID Consistency）**：
   - 必须完全保留第一张图中人物的面部特征、五官比例、脸型和肤色。
   - **重要**：生成的脸必须与原图中的人完全一致，不能发生"换脸"或长相改变。仅允许根据动作和表情指令进行自然的肌肉动态调整。

2. **服装与动作融合**：
   - 让模特穿上第二张图中的衣服。
   - 模特的动作调整为：%s。
   - 模特的表情调整为：%s。

3. **场景与画质**：
   - 背景环境：%s。
   - 风格：4K高清写实摄影，光影逼真，皮肤纹理自然。`

const tryOnPromptDescribedGarment = `任务：生成一张高质量的写实人像照片。

输入说明：
- 图片：原始模特图（参考人物ID）。

生成要求：
1. **严格保持人物身份（ID Consistency）**：
   - 必须完全保留原图中人物的面部特征、五官比例、脸型和肤色。
   - **重要**：生成的脸必须与原图中的人完全一致，不能发生"换脸"或长相改变。仅允许根据动作和表情指令进行自然的肌肉动态调整。

2. **服装与动作融合**：
   - 将模特的服装替换为：%s。
   - 服装细节描述：%s。
   - 模特的动作调整为：%s。
   - 模特的表情调整为：%s。

3. **场景与画质**：
   - 背景环境：%s。
   - 风格：4K高清写实摄影，光影逼真，皮肤纹理自然。`

// BuildTryOnInstruction renders the text part of a try-on request. Blank pose
// or expression falls back to the neutral defaults.
func BuildTryOnInstruction(item models.ClothingItem, scenePrompt, pose, expression string) string {
	if strings.TrimSpace(pose) == "" {
		pose = DefaultPose
	}
	if strings.TrimSpace(expression) == "" {
		expression = DefaultExpression
	}
	if UsesGarmentImage(item) {
		return fmt.Sprintf(tryOnPromptWithGarmentImage, pose, expression, scenePrompt)
	}
	return fmt.Sprintf(tryOnPromptDescribedGarment, item.Name, item.Description, pose, expression, scenePrompt)
}

const analysisPromptTemplate = `分析这张照片中人物的时尚风格、体型和肤色。

可用的服装库存列表如下：
%s

请从库存中挑选 3 件最适合该用户的服装，并返回其ID到 suggestedItemIds 字段中。
请用中文回答，语气礼貌且专业。`

func BuildAnalysisInstruction(inventoryContext string) string {
	return fmt.Sprintf(analysisPromptTemplate, inventoryContext)
}

const chatSystemTemplate = `你是一位世界级的时尚造型师助手，名叫 阿猫阿春。

这是你目前可以调用的服装库存：
%s

当用户询问建议或让你推荐衣服时，请从库存中挑选最合适的。
**重要：如果你推荐了库存中的某件具体衣服，请务必在回复中包含该衣服的ID，格式为：[[ID]]。**
例如："我觉得 [[c1]] 很适合你，或者你可以试试 [[f2]]。"

请务必使用中文回答，保持对话简短、时尚且有帮助。`

func BuildChatSystemInstruction(inventoryContext string) string {
	return fmt.Sprintf(chatSystemTemplate, inventoryContext)
}
