package mysql

import (
	"gorm.io/gorm"

	"Neighbor_Share/internal/model"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

// Create 帖子与社区挂接在同一事务内写入
func (r *PostRepository) Create(post *model.Post, communityIDs []uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		for _, cid := range communityIDs {
			if err := tx.Create(&model.PostCommunity{
				PostID:      post.ID,
				CommunityID: cid,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostRepository) FindByID(id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.First(&post, id).Error
	return &post, err
}

func (r *PostRepository) ListByCommunity(communityID uint64, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.
		Joins("JOIN post_communities pc ON pc.post_id = posts.id").
		Where("pc.community_id = ?", communityID).
		Order("posts.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

// CommunityIDs 帖子挂接的社区 id 列表
func (r *PostRepository) CommunityIDs(postID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.Model(&model.PostCommunity{}).
		Where("post_id = ?", postID).
		Pluck("community_id", &ids).Error
	return ids, err
}

func (r *PostRepository) Delete(id uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.PostCommunity{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, id).Error
	})
}
