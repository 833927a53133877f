package v1

import (
	"github.com/gogf/gf/v2/encoding/gjson"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/os/gtime"
)

// 音频上传API（支持单文件和多文件）
type UploadReq struct {
	g.Meta `path:"/upload" method:"post" mime:"multipart/form-data" summary:"上传音频" dc:"使用 multipart/form-data 方式上传（可批量，并行处理）。字段名是 files。每个音频创建一个任务，受每日任务数限制。"`
}
type UploadRes struct {
	JobMetas []JobMeta   `json:"jobMetas" dc:"成功创建的任务列表"`
	Errors   []FileError `json:"errors,omitempty" dc:"失败的文件错误信息"`
	Total    int         `json:"total" dc:"总文件数"`
	Success  int         `json:"success" dc:"成功数"`
	Failed   int         `json:"failed" dc:"失败数"`
}
type FileError struct {
	FileName string `json:"file_name" dc:"文件名"`
	JobId    string `json:"job_id,omitempty" dc:"已创建的任务ID（上传失败时任务停留在 Uploading）"`
	Error    string `json:"error" dc:"错误信息"`
}

type JobMeta struct {
	Id           string      `json:"id" dc:"任务ID"`
	Owner        string      `json:"owner" dc:"拥有者"`
	FileName     string      `json:"fileName" dc:"音频文件名"`
	Status       string      `json:"status" dc:"任务状态 Uploading/Processing/Completed/Failed"`
	StatusMsg    string      `json:"statusMsg" dc:"任务状态说明"`
	MeetingNotes string      `json:"meetingNotes" dc:"会议纪要"`
	CreatedAt    *gtime.Time `json:"createdAt" dc:"创建时间"`
	UpdatedAt    *gtime.Time `json:"updatedAt" dc:"更新时间"`
}

type Job struct {
	JobMeta
	Transcription string      `json:"transcription" dc:"转写文本"`
	Results       *gjson.Json `json:"results" dc:"原始转写结果"`
}

type ListReq struct {
	g.Meta `path:"/list" method:"get" summary:"获取任务列表" dc:"按创建时间倒序返回当前用户未删除的任务"`
}
type ListRes struct {
	Total    int       `json:"total" dc:"总条目数"`
	JobMetas []JobMeta `json:"jobMetas" dc:"任务列表"`
}

type GetReq struct {
	g.Meta `path:"/{id}" method:"get" summary:"获取任务详情"`
	Id     string `json:"id" in:"path" v:"required" dc:"任务ID"`
}
type GetRes Job

type QueryReq struct {
	g.Meta `path:"/query" method:"get" summary:"批量查询任务"`
	Ids    []string `json:"ids" v:"required" dc:"任务ID列表，最多100个"`
}
type QueryRes struct {
	JobMetas []JobMeta `json:"jobMetas" dc:"任务元数据列表"`
}

type SearchReq struct {
	g.Meta  `path:"/search" method:"get" summary:"搜索任务"`
	Keyword string `json:"keyword" v:"required" dc:"关键词，匹配文件名、状态和转写文本"`
	Limit   int    `json:"limit" d:"20" v:"min:1|max:100" dc:"返回条数，默认20，最大100"`
}
type SearchRes []JobMeta

type QuotaReq struct {
	g.Meta `path:"/quota" method:"get" summary:"查询今日任务额度"`
}
type QuotaRes struct {
	Used      int `json:"used" dc:"今日已创建任务数"`
	Limit     int `json:"limit" dc:"每日上限"`
	Remaining int `json:"remaining" dc:"剩余可创建数"`
}

type GetFileURLReq struct {
	g.Meta `path:"/{id}/file" method:"get" summary:"获取音频文件URL"`
	Id     string `json:"id" in:"path" v:"required" dc:"任务ID"`
}
type GetFileURLRes struct {
	FileURL string `json:"file_url" dc:"文件URL，有效期见 jobs.urlExpires"`
}

type GenerateNotesReq struct {
	g.Meta           `path:"/{id}/notes" method:"post" summary:"生成会议纪要"`
	Id               string `json:"id" in:"path" v:"required" dc:"任务ID"`
	SpeakerDetection bool   `json:"speakerDetection" dc:"是否按说话人整理后再生成"`
}
type GenerateNotesRes Job

type DeleteReq struct {
	g.Meta `path:"/{id}" method:"delete" summary:"删除任务"`
	Id     string `json:"id" in:"path" v:"required" dc:"任务ID"`
}
type DeleteRes struct {
	Success bool `json:"success" dc:"是否删除成功"`
}
