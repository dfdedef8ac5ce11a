package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/BabyGoatsInc/baby-goats-service/internal/logic"
	"github.com/BabyGoatsInc/baby-goats-service/internal/middleware"
	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TeamChallengeHandler 团队挑战处理器
type TeamChallengeHandler struct {
	challengeLogic     *logic.ChallengeLogic
	teamChallengeLogic *logic.TeamChallengeLogic
}

// NewTeamChallengeHandler 创建团队挑战处理器
func NewTeamChallengeHandler(db *gorm.DB) *TeamChallengeHandler {
	return &TeamChallengeHandler{
		challengeLogic:     logic.NewChallengeLogic(db),
		teamChallengeLogic: logic.NewTeamChallengeLogic(db),
	}
}

// teamChallengeRequest POST请求体，action 作为判别字段
type teamChallengeRequest struct {
	Action string `json:"action" binding:"required"`

	// action = create
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	Sport                  string     `json:"sport"`
	ChallengeType          string     `json:"challenge_type"`
	TargetMetric           string     `json:"target_metric"`
	TargetValue            float64    `json:"target_value"`
	MinTeamSize            int        `json:"min_team_size"`
	MaxTeamSize            int        `json:"max_team_size"`
	TeamPointsReward       int64      `json:"team_points_reward"`
	IndividualPointsReward int64      `json:"individual_points_reward"`
	StartDate              *time.Time `json:"start_date"`
	DurationDays           int        `json:"duration_days"`

	// action = register
	ChallengeId int64 `json:"challenge_id"`
	TeamId      int64 `json:"team_id"`
}

// contributionRequest PUT请求体
type contributionRequest struct {
	ParticipationId   int64   `json:"participation_id" binding:"required"`
	ContributionValue float64 `json:"contribution_value" binding:"required"`
	ContributionType  string  `json:"contribution_type"`
}

// List 查询挑战或参赛记录。
// 带参赛过滤参数时返回参赛记录，否则返回挑战列表。
func (h *TeamChallengeHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	challengeId, _ := strconv.ParseInt(c.Query("challenge_id"), 10, 64)
	teamId, _ := strconv.ParseInt(c.Query("team_id"), 10, 64)
	userId, _ := strconv.ParseInt(c.Query("user_id"), 10, 64)
	status := c.Query("status")
	sport := c.Query("sport")

	if challengeId > 0 || teamId > 0 || userId > 0 || status != "" {
		filter := logic.ParticipationFilter{
			ChallengeId: challengeId,
			TeamId:      teamId,
			UserId:      userId,
			Sport:       sport,
			Status:      status,
		}
		participations, total, err := h.teamChallengeLogic.GetParticipations(filter, page, pageSize)
		if err != nil {
			HandleError(c, err)
			return
		}
		SuccessResponse(c, http.StatusOK, "", gin.H{
			"participations": participations,
			"pagination":     NewPagination(page, pageSize, total),
		})
		return
	}

	challenges, total, err := h.challengeLogic.GetChallenges(sport, true, page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{
		"challenges": challenges,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// Get 获取挑战详情
func (h *TeamChallengeHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的挑战ID")
		return
	}

	challenge, err := h.challengeLogic.GetChallenge(id)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"challenge": challenge})
}

// Post 创建挑战或报名，按 action 分发
func (h *TeamChallengeHandler) Post(c *gin.Context) {
	var req teamChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "缺少字段 action")
		return
	}

	userId := middleware.CurrentUserID(c)

	switch req.Action {
	case "create":
		h.create(c, &req, userId)
	case "register":
		h.register(c, &req, userId)
	default:
		ErrorResponse(c, http.StatusBadRequest, "无效的 action，必须是 create 或 register")
	}
}

// create 创建新挑战
func (h *TeamChallengeHandler) create(c *gin.Context, req *teamChallengeRequest, userId int64) {
	challenge := model.ChallengeModel{
		Title:                  req.Title,
		Description:            req.Description,
		Sport:                  req.Sport,
		CreatorId:              userId,
		ChallengeType:          model.ChallengeType(req.ChallengeType),
		TargetMetric:           req.TargetMetric,
		TargetValue:            req.TargetValue,
		MinTeamSize:            req.MinTeamSize,
		MaxTeamSize:            req.MaxTeamSize,
		TeamPointsReward:       req.TeamPointsReward,
		IndividualPointsReward: req.IndividualPointsReward,
		StartDate:              req.StartDate,
	}

	if err := h.challengeLogic.CreateChallenge(&challenge, req.DurationDays); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "挑战创建成功", gin.H{"challenge": challenge})
}

// register 队伍报名
func (h *TeamChallengeHandler) register(c *gin.Context, req *teamChallengeRequest, userId int64) {
	if req.ChallengeId == 0 || req.TeamId == 0 {
		ErrorResponse(c, http.StatusBadRequest, "缺少字段 challenge_id 或 team_id")
		return
	}

	participation, err := h.teamChallengeLogic.RegisterTeam(req.ChallengeId, req.TeamId, userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "报名成功", gin.H{"participation": participation})
}

// Contribute 提交贡献并触发进度重算
func (h *TeamChallengeHandler) Contribute(c *gin.Context) {
	var req contributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "缺少字段 participation_id 或 contribution_value")
		return
	}

	userId := middleware.CurrentUserID(c)
	participation, err := h.teamChallengeLogic.SubmitContribution(
		req.ParticipationId, userId, req.ContributionValue, req.ContributionType)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "贡献提交成功", gin.H{"participation": participation})
}

// GetContributions 获取参赛记录的贡献账本
func (h *TeamChallengeHandler) GetContributions(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的参赛记录ID")
		return
	}

	contributions, err := h.teamChallengeLogic.GetContributions(id)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"contributions": contributions})
}

// Deactivate 下架挑战
func (h *TeamChallengeHandler) Deactivate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的挑战ID")
		return
	}

	userId := middleware.CurrentUserID(c)
	if err := h.challengeLogic.DeactivateChallenge(id, userId); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "挑战已下架", nil)
}
